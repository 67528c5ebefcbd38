package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parlaseramik/config"
	deliverycontext "parlaseramik/internal/delivery/context"
	domainerrors "parlaseramik/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedEcho(logs *bytes.Buffer, debug bool) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	return e
}

func TestRequestID_KeepsClientID(t *testing.T) {
	var logs bytes.Buffer
	e := newLoggedEcho(&logs, false)

	var fromCtx string
	e.GET("/api/products", func(c echo.Context) error {
		fromCtx = deliverycontext.GetRequestID(c)

		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "storefront-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "storefront-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "storefront-123", fromCtx)
}

func TestRequestID_ReplacesUnusableClientID(t *testing.T) {
	e := newLoggedEcho(&bytes.Buffer{}, false)
	e.GET("/api/products", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for name, header := range map[string]string{
		"too long":  strings.Repeat("a", maxRequestIDLength+1),
		"has space": "bad id",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			req.Header.Set(deliverycontext.HeaderXRequestID, header)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			_, err := uuid.Parse(rec.Header().Get(deliverycontext.HeaderXRequestID))
			require.NoError(t, err)
		})
	}
}

func TestLogger_DerivesStatusFromReturnedError(t *testing.T) {
	var logs bytes.Buffer
	e := newLoggedEcho(&logs, true)
	e.GET("/api/products/:id", func(c echo.Context) error {
		return errors.Wrap(domainerrors.ErrProductNotFound, "lookup")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products/42", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-7")
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := logs.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"request_id":"req-7"`)
	assert.Contains(t, out, `"route":"/api/products/:id"`)
}

func TestLogger_SilentWithoutDebug(t *testing.T) {
	var logs bytes.Buffer
	e := newLoggedEcho(&logs, false)
	e.GET("/api/categories", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Empty(t, logs.String())
}

func TestAccessLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, accessLogLevel("/health", http.StatusOK))
	assert.Equal(t, slog.LevelInfo, accessLogLevel("/api/products", http.StatusOK))
	assert.Equal(t, slog.LevelWarn, accessLogLevel("/api/orders", http.StatusConflict))
	assert.Equal(t, slog.LevelError, accessLogLevel("/health", http.StatusServiceUnavailable))
}
