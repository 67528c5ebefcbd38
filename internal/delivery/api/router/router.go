// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"parlaseramik/config"
	"parlaseramik/internal/delivery/api/middleware"
	"parlaseramik/internal/delivery/api/router/handler"
	"parlaseramik/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CategoryHandler *handler.CategoryHandler
	ProductHandler  *handler.ProductHandler
	OrderHandler    *handler.OrderHandler
	ReviewHandler   *handler.ReviewHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	categoryHandler *handler.CategoryHandler
	productHandler  *handler.ProductHandler
	orderHandler    *handler.OrderHandler
	reviewHandler   *handler.ReviewHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		categoryHandler: params.CategoryHandler,
		productHandler:  params.ProductHandler,
		orderHandler:    params.OrderHandler,
		reviewHandler:   params.ReviewHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		if r.config.Auth.RegistrationEnabled {
			authGroup.POST("/register", r.authHandler.Register)
		}
	}

	// Public catalog
	{
		api.GET("/categories", r.categoryHandler.ListActive)
		api.GET("/categories/:id", r.categoryHandler.Get)

		api.GET("/products", r.productHandler.List)
		api.GET("/products/search", r.productHandler.Search)
		api.GET("/products/featured", r.productHandler.Featured)
		api.GET("/products/category/:categoryId", r.productHandler.ListByCategory)
		api.GET("/products/:id", r.productHandler.Get)

		api.GET("/reviews/product/:productId", r.reviewHandler.ListForProduct)
	}

	r.registerUserRoutes(api)
	r.registerAdminRoutes(api)
}

func (r *router) registerUserRoutes(api *echo.Group) {
	auth := r.authMiddleware.Authenticate

	usersGroup := api.Group("/users", auth)
	{
		usersGroup.GET("/profile", r.userHandler.GetProfile)
		usersGroup.PUT("/profile", r.userHandler.UpdateProfile)
		usersGroup.PUT("/password", r.userHandler.ChangePassword)
	}

	ordersGroup := api.Group("/orders", auth)
	{
		ordersGroup.GET("/my", r.orderHandler.ListMine)
		ordersGroup.GET("/:id", r.orderHandler.GetMine)
		ordersGroup.POST("", r.orderHandler.Create)
		ordersGroup.PATCH("/:id/cancel", r.orderHandler.Cancel)
	}

	// The public product listing shares the /reviews prefix, so these routes
	// carry the middleware individually.
	api.POST("/reviews", r.reviewHandler.Create, auth)
	api.GET("/reviews/my", r.reviewHandler.ListMine, auth)
}

func (r *router) registerAdminRoutes(api *echo.Group) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)                  // First, check if logged in
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin)) // Then, check for the role

	products := adminGroup.Group("/products")
	{
		products.GET("", r.productHandler.ListAll)
		products.GET("/:id", r.productHandler.AdminGet)
		products.POST("", r.productHandler.Create)
		products.PUT("/:id", r.productHandler.Update)
		products.DELETE("/:id", r.productHandler.Delete)
	}

	categories := adminGroup.Group("/categories")
	{
		categories.GET("", r.categoryHandler.ListAll)
		categories.POST("", r.categoryHandler.Create)
		categories.PUT("/:id", r.categoryHandler.Update)
		categories.DELETE("/:id", r.categoryHandler.Delete)
	}

	orders := adminGroup.Group("/orders")
	{
		orders.GET("", r.orderHandler.ListAll)
		orders.GET("/:id", r.orderHandler.Get)
		orders.PATCH("/:id/status", r.orderHandler.UpdateStatus)
		orders.PATCH("/:id/payment-status", r.orderHandler.UpdatePaymentStatus)
	}

	reviews := adminGroup.Group("/reviews")
	{
		reviews.GET("/pending", r.reviewHandler.ListPending)
		reviews.GET("", r.reviewHandler.ListAll)
		reviews.PATCH("/:id/approve", r.reviewHandler.Approve)
		reviews.PATCH("/:id/reply", r.reviewHandler.Reply)
		reviews.DELETE("/:id", r.reviewHandler.Delete)
	}
}
