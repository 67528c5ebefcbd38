package repository

import (
	"context"

	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for category persistence.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
)

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll returns every category, including inactive ones, ordered by TR name.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindActive returns active categories ordered by TR name.
	FindActive(ctx context.Context) ([]*entity.Category, error)

	// ExistsByNameTr reports whether another category uses the TR name.
	// excludeID is ignored when it is uuid.Nil.
	ExistsByNameTr(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// ExistsByNameEn is the EN counterpart of ExistsByNameTr.
	ExistsByNameEn(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
}
