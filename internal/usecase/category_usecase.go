// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"parlaseramik/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	NameTr        string
	NameEn        string
	DescriptionTr string
	DescriptionEn string
}

// CategoryUsecase defines the category catalog operations.
type CategoryUsecase interface {
	ListActive(ctx context.Context) ([]*entity.Category, error)
	ListAll(ctx context.Context) ([]*entity.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Create(ctx context.Context, input *CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
