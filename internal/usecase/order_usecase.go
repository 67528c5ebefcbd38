package usecase

import (
	"context"

	"parlaseramik/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested product line.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// AddressInput is the shipping destination given at checkout.
type AddressInput struct {
	Title        string
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress AddressInput
	Notes           string
}

// OrderUsecase defines order placement, cancellation and back-office updates.
type OrderUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)
	Cancel(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error)
	GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error)

	ListAll(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Order], error)
	Get(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status entity.PaymentStatus) (*entity.Order, error)
}
