package usecase

import (
	"context"

	"parlaseramik/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	NameTr        string
	NameEn        string
	DescriptionTr string
	DescriptionEn string
	Price         decimal.Decimal
	Stock         int
	Images        []string
	CategoryID    uuid.UUID
	Featured      *bool // nil means false on create and unchanged on update
}

// ProductUsecase defines the product catalog operations.
type ProductUsecase interface {
	// List returns active products.
	List(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Product], error)
	// ListAll includes inactive products.
	ListAll(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Product], error)
	Featured(ctx context.Context) ([]*entity.Product, error)
	// Get hides inactive products.
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	AdminGet(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, page entity.PageRequest) (*entity.Page[*entity.Product], error)
	Search(ctx context.Context, keyword string, page entity.PageRequest) (*entity.Page[*entity.Product], error)
	Create(ctx context.Context, input *ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
