package repository

import (
	"context"

	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/errors"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address is not found.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the interface for address-related database operations.
type AddressRepository interface {
	// CreateAddress persists a new address for a user.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressByID retrieves an address by its unique ID.
	FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// FindAddressesByUser retrieves a user's addresses, default first.
	FindAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
}
