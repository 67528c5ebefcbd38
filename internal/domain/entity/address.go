package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a shipping destination owned by a user. Orders always get their own
// snapshot row, so later edits to a saved address never rewrite order history.
type Address struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsDefault    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
