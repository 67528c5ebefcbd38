package repository

import (
	"context"

	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock adjustment would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductFilter narrows a paginated product listing.
type ProductFilter struct {
	ActiveOnly bool
	CategoryID uuid.UUID // uuid.Nil means any category
	Keyword    string    // case-insensitive substring of either name
}

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	// FindByID loads a product with its category and images, regardless of Active.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate is FindByID with a row lock held until the transaction ends.
	// It must be called inside TransactionManager.Execute.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns a page of products matching the filter, newest first.
	List(ctx context.Context, filter ProductFilter, page entity.PageRequest) (*entity.Page[*entity.Product], error)

	// FindFeatured returns active featured products.
	FindFeatured(ctx context.Context) ([]*entity.Product, error)

	// Create persists the product and its images.
	Create(ctx context.Context, product *entity.Product) error

	// Update writes all editable fields and replaces the image list.
	Update(ctx context.Context, product *entity.Product) error

	// AdjustStock adds delta (negative to take) to the stock.
	// Returns ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error

	// UpdateRating stores the derived rating fields.
	UpdateRating(ctx context.Context, id uuid.UUID, averageRating float64, reviewCount int) error
}
