package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "parlaseramik/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	m := NewErrorMiddleware(slog.New(slog.NewJSONHandler(&logs, nil)))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/products", nil), rec)

	m.HandleHTTPError(err, c)

	return rec, &logs
}

func TestHandleHTTPError_WrappedAppError(t *testing.T) {
	rec, _ := handleError(t, errors.Wrap(domainerrors.ErrProductNotFound, "record not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"PRODUCT_NOT_FOUND"`)
}

func TestHandleHTTPError_EchoError(t *testing.T) {
	rec, _ := handleError(t, echo.ErrMethodNotAllowed)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)
}

func TestHandleHTTPError_UnknownErrorIsHidden(t *testing.T) {
	rec, logs := handleError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestHandleHTTPError_DatabaseErrorDropsDetails(t *testing.T) {
	rec, logs := handleError(t, domainerrors.NewDatabaseExecuteError(errors.New("deadlock"), "orders insert"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "orders insert")
	assert.Contains(t, logs.String(), "deadlock")
}
