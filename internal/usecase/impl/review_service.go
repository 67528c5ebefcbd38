package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "parlaseramik/internal/delivery/context"
	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/repository"
	"parlaseramik/internal/domain/service"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager   repository.TransactionManager
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	cache       service.CatalogCache
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ReviewRepo  repository.ReviewRepository
	ProductRepo repository.ProductRepository
	Cache       service.CatalogCache
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:   params.TxManager,
		reviewRepo:  params.ReviewRepo,
		productRepo: params.ProductRepo,
		cache:       params.Cache,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores the review unapproved, whatever the caller asked for.
func (srv *reviewService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, mapProductError(err)
	}

	review := &entity.Review{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		Approved:  false,
	}

	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(mapProductError(err), "failed to create review")
	}

	srv.log(ctx).Info("Review submitted", slog.Any("reviewID", review.ID), slog.Any("productID", review.ProductID))

	return srv.reload(ctx, review.ID)
}

func (srv *reviewService) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindApprovedByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product reviews")
	}

	return reviews, nil
}

func (srv *reviewService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user reviews")
	}

	return reviews, nil
}

func (srv *reviewService) List(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Review], error) {
	return srv.list(ctx, false, page)
}

func (srv *reviewService) ListPending(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Review], error) {
	return srv.list(ctx, true, page)
}

func (srv *reviewService) list(ctx context.Context, pendingOnly bool, page entity.PageRequest) (*entity.Page[*entity.Review], error) {
	reviews, err := srv.reviewRepo.List(ctx, pendingOnly, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// Approve publishes the review and refreshes the product rating in the same transaction.
func (srv *reviewService) Approve(ctx context.Context, reviewID uuid.UUID) (*entity.Review, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			return mapReviewError(err)
		}

		if err := reviewRepo.SetApproved(ctx, reviewID, true); err != nil {
			return mapReviewError(err)
		}

		return srv.recomputeRating(ctx, repoFactory, review.ProductID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to approve review")
	}

	srv.cache.Invalidate(service.CacheNamespaceProducts)
	srv.log(ctx).Info("Review approved", slog.Any("reviewID", reviewID))

	return srv.reload(ctx, reviewID)
}

// Reply sets the admin reply and leaves approval as it is.
func (srv *reviewService) Reply(ctx context.Context, reviewID uuid.UUID, reply string) (*entity.Review, error) {
	if err := srv.reviewRepo.SetAdminReply(ctx, reviewID, strings.TrimSpace(reply)); err != nil {
		return nil, mapReviewError(err)
	}

	return srv.reload(ctx, reviewID)
}

func (srv *reviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			return mapReviewError(err)
		}

		if err := reviewRepo.Delete(ctx, reviewID); err != nil {
			return mapReviewError(err)
		}

		return srv.recomputeRating(ctx, repoFactory, review.ProductID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	srv.cache.Invalidate(service.CacheNamespaceProducts)
	srv.log(ctx).Info("Review deleted", slog.Any("reviewID", reviewID))

	return nil
}

// recomputeRating derives the product rating from its approved reviews.
func (srv *reviewService) recomputeRating(ctx context.Context, repoFactory repository.RepositoryFactory, productID uuid.UUID) error {
	approved, err := repoFactory.ReviewRepo().FindApprovedByProduct(ctx, productID)
	if err != nil {
		return errors.Wrap(err, "failed to load approved reviews")
	}

	average, count := entity.AverageRating(approved)
	if err := repoFactory.ProductRepo().UpdateRating(ctx, productID, average, count); err != nil {
		return mapProductError(err)
	}

	return nil
}

func (srv *reviewService) reload(ctx context.Context, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, mapReviewError(err)
	}

	return review, nil
}

func mapReviewError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrReviewNotFound):
		return errors.Wrap(domainerrors.ErrReviewNotFound, err.Error())
	default:
		return errors.Wrap(err, "review repository failure")
	}
}
