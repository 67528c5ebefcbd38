package repository

import (
	"context"

	"parlaseramik/internal/domain/entity"
	"parlaseramik/internal/errors"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines the interface for review persistence.
// Loaded reviews carry the product name and the author's full name.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindApprovedByProduct returns approved reviews of a product, newest first.
	FindApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// FindByUser returns a user's reviews, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)

	// List returns a page of reviews newest first; pendingOnly keeps unapproved ones.
	List(ctx context.Context, pendingOnly bool, page entity.PageRequest) (*entity.Page[*entity.Review], error)

	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	SetAdminReply(ctx context.Context, id uuid.UUID, reply string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
