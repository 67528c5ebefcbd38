package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber       string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShippingAddressID uuid.UUID       `gorm:"type:uuid;not null"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status            string          `gorm:"type:varchar(20);not null"`
	PaymentStatus     string          `gorm:"type:varchar(20);not null"`
	PaymentID         string          `gorm:"type:varchar(100)"`
	TrackingNumber    string          `gorm:"type:varchar(100)"`
	Notes             string          `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	User            *UserModel       `gorm:"foreignKey:UserID"`
	ShippingAddress *AddressModel    `gorm:"foreignKey:ShippingAddressID"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Position  int             `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
