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

// categoryRepository implements the repository.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by ID")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	return repo.find(repo.db.WithContext(ctx))
}

func (repo *categoryRepository) FindActive(ctx context.Context) ([]*entity.Category, error) {
	return repo.find(repo.db.WithContext(ctx).Where("active = ?", true))
}

func (repo *categoryRepository) find(query *gorm.DB) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel

	if err := query.Order("name_tr ASC").Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

func (repo *categoryRepository) ExistsByNameTr(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return repo.existsBy(ctx, "name_tr", name, excludeID)
}

func (repo *categoryRepository) ExistsByNameEn(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return repo.existsBy(ctx, "name_en", name, excludeID)
}

func (repo *categoryRepository) existsBy(ctx context.Context, column, name string, excludeID uuid.UUID) (bool, error) {
	var count int64

	query := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where(column+" = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "failed to check category %s", column)
	}

	return count > 0, nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCategory
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// Update writes names, descriptions and the active flag.
func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name_tr":        category.NameTr,
			"name_en":        category.NameEn,
			"description_tr": category.DescriptionTr,
			"description_en": category.DescriptionEn,
			"active":         category.Active,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateCategory
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update category")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:            data.ID,
		NameTr:        data.NameTr,
		NameEn:        data.NameEn,
		DescriptionTr: data.DescriptionTr,
		DescriptionEn: data.DescriptionEn,
		Active:        data.Active,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:            data.ID,
		NameTr:        data.NameTr,
		NameEn:        data.NameEn,
		DescriptionTr: data.DescriptionTr,
		DescriptionEn: data.DescriptionEn,
		Active:        data.Active,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
