package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"parlaseramik/config"
	"parlaseramik/internal/delivery/api/middleware"
	"parlaseramik/internal/delivery/api/router/handler"
	mockService "parlaseramik/internal/mocks/service"
	mockUsecase "parlaseramik/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T, registrationEnabled bool) *echo.Echo {
	t.Helper()

	cfg := &config.Config{Pagination: config.PaginationConfig{DefaultSize: 20, MaxSize: 100}}
	cfg.Auth.RegistrationEnabled = registrationEnabled
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter(RouterParams{
		AuthHandler:     handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: mockUsecase.NewMockAuthUsecase(t), Logger: logger}),
		UserHandler:     handler.NewUserHandler(handler.UserHandlerParams{UserUC: mockUsecase.NewMockUserUsecase(t), Logger: logger}),
		CategoryHandler: handler.NewCategoryHandler(handler.CategoryHandlerParams{CategoryUC: mockUsecase.NewMockCategoryUsecase(t), Logger: logger}),
		ProductHandler:  handler.NewProductHandler(handler.ProductHandlerParams{ProductUC: mockUsecase.NewMockProductUsecase(t), Config: cfg, Logger: logger}),
		OrderHandler:    handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: mockUsecase.NewMockOrderUsecase(t), Config: cfg, Logger: logger}),
		ReviewHandler:   handler.NewReviewHandler(handler.ReviewHandlerParams{ReviewUC: mockUsecase.NewMockReviewUsecase(t), Config: cfg, Logger: logger}),
		AuthMiddleware:  middleware.NewAuthMiddleware(mockService.NewMockTokenService(t)),
		Config:          cfg,
	})

	e := echo.New()
	r.RegisterRoutes(e)

	return e
}

func hasRoute(e *echo.Echo, method, path string) bool {
	for _, route := range e.Routes() {
		if route.Method == method && route.Path == path {
			return true
		}
	}

	return false
}

func TestRegisterRoutes_RegistrationIsOptIn(t *testing.T) {
	assert.False(t, hasRoute(newTestRouter(t, false), http.MethodPost, "/api/auth/register"))
	assert.True(t, hasRoute(newTestRouter(t, true), http.MethodPost, "/api/auth/register"))
}

func TestRegisterRoutes_Surface(t *testing.T) {
	e := newTestRouter(t, false)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodGet, "/api/products/category/:categoryId"},
		{http.MethodGet, "/api/reviews/product/:productId"},
		{http.MethodPatch, "/api/orders/:id/cancel"},
		{http.MethodGet, "/api/reviews/my"},
		{http.MethodPatch, "/api/admin/orders/:id/payment-status"},
		{http.MethodDelete, "/api/admin/reviews/:id"},
		{http.MethodGet, "/api/admin/categories"},
	} {
		assert.True(t, hasRoute(e, route.method, route.path), "%s %s", route.method, route.path)
	}
}

func TestRegisterRoutes_ProtectedGroupsRequireToken(t *testing.T) {
	e := newTestRouter(t, false)

	for _, target := range []string{"/api/users/profile", "/api/orders/my", "/api/reviews/my", "/api/admin/orders"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}
