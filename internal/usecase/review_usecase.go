package usecase

import (
	"context"

	"parlaseramik/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data required to review a product.
type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Comment   string
}

// ReviewUsecase defines review submission and moderation.
type ReviewUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input *CreateReviewInput) (*entity.Review, error)
	ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)

	List(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Review], error)
	ListPending(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Review], error)
	Approve(ctx context.Context, reviewID uuid.UUID) (*entity.Review, error)
	Reply(ctx context.Context, reviewID uuid.UUID, reply string) (*entity.Review, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
}
