package postgres

import (
	"context"

	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/repository"
	"parlaseramik/internal/errors"
	"parlaseramik/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reviewRepository implements the repository.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Product").
		Preload("User")
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Omit("Product", "User").Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel

	if err := repo.withAssociations(ctx).
		Where("id = ?", id).
		First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by ID")
	}

	return toReviewDomain(&reviewM), nil
}

func (repo *reviewRepository) FindApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	return repo.find(repo.withAssociations(ctx).
		Where("product_id = ? AND approved = ?", productID, true))
}

func (repo *reviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return repo.find(repo.withAssociations(ctx).Where("user_id = ?", userID))
}

func (repo *reviewRepository) find(query *gorm.DB) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel

	if err := query.Order("created_at DESC").Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return toReviewsDomain(reviewModels), nil
}

func (repo *reviewRepository) List(ctx context.Context, pendingOnly bool, page entity.PageRequest) (*entity.Page[*entity.Review], error) {
	query := repo.db.WithContext(ctx).Model(&model.ReviewModel{})
	if pendingOnly {
		query = query.Where("approved = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	var reviewModels []*model.ReviewModel
	if err := query.
		Preload("Product").
		Preload("User").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return &entity.Page[*entity.Review]{
		Items: toReviewsDomain(reviewModels),
		Page:  page.Page,
		Size:  page.Size,
		Total: total,
	}, nil
}

func (repo *reviewRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	return repo.updateColumn(ctx, id, "approved", approved)
}

func (repo *reviewRepository) SetAdminReply(ctx context.Context, id uuid.UUID, reply string) error {
	return repo.updateColumn(ctx, id, "admin_reply", reply)
}

func (repo *reviewRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("id = ?", id).
		Update(column, value)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update review "+column)
	}

	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ReviewModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}

	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	review := &entity.Review{
		ID:         data.ID,
		ProductID:  data.ProductID,
		UserID:     data.UserID,
		Rating:     data.Rating,
		Comment:    data.Comment,
		AdminReply: data.AdminReply,
		Approved:   data.Approved,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
	if data.Product != nil {
		review.ProductName = data.Product.NameTr
	}
	if user := toUserDomain(data.User); user != nil {
		review.UserName = user.FullName()
	}

	return review
}

func toReviewsDomain(data []*model.ReviewModel) []*entity.Review {
	reviews := make([]*entity.Review, 0, len(data))
	for _, reviewM := range data {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:         data.ID,
		ProductID:  data.ProductID,
		UserID:     data.UserID,
		Rating:     data.Rating,
		Comment:    data.Comment,
		AdminReply: data.AdminReply,
		Approved:   data.Approved,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
