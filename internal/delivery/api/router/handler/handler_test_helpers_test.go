package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"parlaseramik/config"
	apimiddleware "parlaseramik/internal/delivery/api/middleware"
	"parlaseramik/internal/delivery/api/validator"
	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/domain/service"
	mockService "parlaseramik/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// testServer is an echo instance wired like the real one, minus the router.
type testServer struct {
	echo   *echo.Echo
	auth   *apimiddleware.AuthMiddleware
	tokens *mockService.MockTokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := mockService.NewMockTokenService(t)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError

	return &testServer{echo: e, auth: apimiddleware.NewAuthMiddleware(tokens), tokens: tokens}
}

// bearer registers token as a valid access token for userID and returns the header value.
func (s *testServer) bearer(token string, userID uuid.UUID, roles ...entity.Role) string {
	s.tokens.EXPECT().ValidateAccessToken(token).
		Return(&service.Claims{UserID: userID, Roles: entity.Roles(roles).ToStrings(), Type: service.TokenTypeAccess}, nil).
		Maybe()

	return "Bearer " + token
}

func (s *testServer) do(t *testing.T, method, target, body, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func testConfig() *config.Config {
	return &config.Config{
		Pagination: config.PaginationConfig{DefaultSize: 20, MaxSize: 100},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// envelope is the decoded response body.
type envelope struct {
	Data  map[string]any `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta map[string]any `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

// decodeList decodes a response whose data is a JSON array.
func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var env struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env.Data
}
