package repository

import (
	"context"

	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found or not visible to the caller.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order persistence.
// Loaded orders carry their items, shipping address and owner email.
type OrderRepository interface {
	// Create persists the order with its items. The shipping address must already exist.
	Create(ctx context.Context, order *entity.Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDAndUserID returns ErrOrderNotFound when the order belongs to someone else.
	FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)

	// FindByUserID returns a user's orders newest first, optionally filtered by status.
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error)

	// List returns a page of all orders, newest first.
	List(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Order], error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// CompareAndSetStatus moves the order from one status to another in a single
	// statement. It reports false when the order was not in the from status.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error)

	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error
}
