package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"parlaseramik/config"
	"parlaseramik/internal/delivery/api/middleware"
	"parlaseramik/internal/delivery/api/response"
	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// OrderHandler serves checkout, the customer's order history and the admin
// order screens.
type OrderHandler struct {
	orderUC    usecase.OrderUsecase
	pagination config.PaginationConfig
	logger     *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC:    params.OrderUC,
		pagination: params.Config.Pagination,
		logger:     params.Logger,
	}
}

// OrderItemRequest is one requested product line
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=1"`
}

// ShippingAddressRequest is the destination given at checkout
type ShippingAddressRequest struct {
	Title        string `json:"title" validate:"max=100"`
	FullName     string `json:"full_name" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,max=20"`
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2" validate:"max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"max=100"`
	PostalCode   string `json:"postal_code" validate:"max=20"`
	Country      string `json:"country" validate:"required,max=100"`
}

// CreateOrderRequest represents the checkout request body
type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	Notes           string                 `json:"notes" validate:"max=1000"`
}

func (r *CreateOrderRequest) toInput() *usecase.CreateOrderInput {
	items := make([]usecase.OrderItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, usecase.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	addr := r.ShippingAddress

	return &usecase.CreateOrderInput{
		Items: items,
		ShippingAddress: usecase.AddressInput{
			Title:        addr.Title,
			FullName:     addr.FullName,
			Phone:        addr.Phone,
			AddressLine1: addr.AddressLine1,
			AddressLine2: addr.AddressLine2,
			City:         addr.City,
			State:        addr.State,
			PostalCode:   addr.PostalCode,
			Country:      addr.Country,
		},
		Notes: r.Notes,
	}
}

// Create places an order for the caller
func (h *OrderHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Geçersiz oturum")
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Geçersiz sipariş bilgisi")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	order, err := h.orderUC.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newOrderView(order))
}

// ListMine returns the caller's orders, optionally filtered by status
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Geçersiz oturum")
	}

	var status *entity.OrderStatus
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		s := entity.OrderStatus(strings.ToUpper(raw))
		status = &s
	}

	orders, err := h.orderUC.ListForUser(c.Request().Context(), userID, status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(orders, newOrderView))
}

// GetMine returns one of the caller's orders
func (h *OrderHandler) GetMine(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Geçersiz oturum")
	}

	orderID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz sipariş kimliği")
	}

	order, err := h.orderUC.GetForUser(c.Request().Context(), orderID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order))
}

// Cancel cancels one of the caller's pending orders
func (h *OrderHandler) Cancel(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Geçersiz oturum")
	}

	orderID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz sipariş kimliği")
	}

	order, err := h.orderUC.Cancel(c.Request().Context(), orderID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order))
}

// ListAll returns a page of all orders, newest first
func (h *OrderHandler) ListAll(c echo.Context) error {
	page, err := pageRequest(c, h.pagination)
	if err != nil {
		return response.BadRequest(c, "INVALID_PAGINATION", "Geçersiz sayfa parametresi")
	}

	orders, err := h.orderUC.ListAll(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, orders, newOrderView)
}

// Get returns any order
func (h *OrderHandler) Get(c echo.Context) error {
	orderID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz sipariş kimliği")
	}

	order, err := h.orderUC.Get(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order))
}

// UpdateStatus overwrites the fulfilment status from the status query parameter
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz sipariş kimliği")
	}

	status := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))))

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), orderID, status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order))
}

// UpdatePaymentStatus overwrites the payment status from the payment_status query parameter
func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	orderID, ok := pathID(c, "id")
	if !ok {
		return response.BadRequest(c, "INVALID_ID", "Geçersiz sipariş kimliği")
	}

	status := entity.PaymentStatus(strings.ToUpper(strings.TrimSpace(c.QueryParam("payment_status"))))

	order, err := h.orderUC.UpdatePaymentStatus(c.Request().Context(), orderID, status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order))
}
