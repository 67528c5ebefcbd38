package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestID_FallsBackToFreshID(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := uuid.Parse(GetRequestID(c))
	require.NoError(t, err)

	SetRequestID(c, "req-42")
	assert.Equal(t, "req-42", GetRequestID(c))
}

func TestWithCaller_TagsRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&logs, nil))
	userID := uuid.New()

	ctx := WithLogger(context.Background(), base.With(slog.String("request_id", "req-1")))
	ctx = WithCaller(ctx, userID)

	got, ok := GetCaller(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	GetLoggerOrDefault(ctx, nil).Info("order placed")
	assert.Contains(t, logs.String(), `"request_id":"req-1"`)
	assert.Contains(t, logs.String(), `"user_id":"`+userID.String()+`"`)
}

func TestWithCaller_WithoutRequestLogger(t *testing.T) {
	fallback := slog.New(slog.DiscardHandler)

	ctx := WithCaller(context.Background(), uuid.New())

	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))
}

func TestGetCaller_Anonymous(t *testing.T) {
	_, ok := GetCaller(context.Background())
	assert.False(t, ok)

	_, ok = GetCaller(WithCaller(context.Background(), uuid.Nil))
	assert.False(t, ok)
}
