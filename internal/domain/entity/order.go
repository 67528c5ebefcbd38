package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

// PaymentStatus tracks payment independently of fulfilment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid checks if the PaymentStatus is a known value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) String() string {
	return string(s)
}

// Order is a placed purchase. TotalAmount is fixed at creation as the sum of
// item subtotals and is never recomputed from current product prices.
type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          uuid.UUID
	UserEmail       string // read-side, filled when the owner is loaded
	ShippingAddress *Address
	Items           []*OrderItem
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentID       string
	TrackingNumber  string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsCancellable reports whether the owner may still cancel the order.
func (o *Order) IsCancellable() bool {
	return o.Status == OrderStatusPending
}

// OrderItem is an immutable snapshot of one ordered product line.
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductName  string // read-side
	ProductImage string // read-side
	Quantity     int
	Price        decimal.Decimal // unit price at order time
	Subtotal     decimal.Decimal
}

// NewOrderItem snapshots the product's current price for quantity units.
func NewOrderItem(product *Product, quantity int) *OrderItem {
	return &OrderItem{
		ID:           uuid.New(),
		ProductID:    product.ID,
		ProductName:  product.NameTr,
		ProductImage: product.CoverImage(),
		Quantity:     quantity,
		Price:        product.Price,
		Subtotal:     product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
