package postgres

import (
	"context"
	"strings"

	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/repository"
	"parlaseramik/internal/errors"
	"parlaseramik/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (repo *productRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", preloadImages)
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.first(repo.withAssociations(ctx).Where("id = ?", id))
}

// FindByIDForUpdate takes a row lock on the primary. Associations are loaded by
// separate unlocked queries.
func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.first(repo.withAssociations(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (repo *productRepository) first(query *gorm.DB) (*entity.Product, error) {
	var productM model.ProductModel

	if err := query.First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter, page entity.PageRequest) (*entity.Page[*entity.Product], error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
		query = query.Where("(lower(name_tr) LIKE ? OR lower(name_en) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	var productModels []*model.ProductModel
	if err := query.
		Preload("Category").
		Preload("Images", preloadImages).
		Order(productOrder(page.Sort)).
		Order("id").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &entity.Page[*entity.Product]{
		Items: toProductsDomain(productModels),
		Page:  page.Page,
		Size:  page.Size,
		Total: total,
	}, nil
}

var productSortColumns = map[entity.SortField]string{
	entity.SortByCreatedAt: "created_at",
	entity.SortByPrice:     "price",
	entity.SortByNameTr:    "name_tr",
}

// productOrder maps a client sort to a column. Unknown fields fall back to newest first.
func productOrder(sort entity.Sort) clause.OrderByColumn {
	column, ok := productSortColumns[sort.Field]
	if !ok || sort.IsDefault() {
		return clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
	}

	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: sort.Desc}
}

func (repo *productRepository) FindFeatured(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.withAssociations(ctx).
		Where("active = ? AND featured = ?", true, true).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find featured products")
	}

	return toProductsDomain(productModels), nil
}

// Create inserts the product row and its image rows.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Omit("Category").Create(productM).Error; err != nil {
		return mapProductWriteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update writes the editable columns and replaces the image rows. Callers run
// it inside a transaction so the image swap is atomic.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	db := repo.db.WithContext(ctx)

	result := db.Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name_tr":        product.NameTr,
			"name_en":        product.NameEn,
			"description_tr": product.DescriptionTr,
			"description_en": product.DescriptionEn,
			"price":          product.Price,
			"stock":          product.Stock,
			"category_id":    product.CategoryID,
			"active":         product.Active,
			"featured":       product.Featured,
		})
	if result.Error != nil {
		return mapProductWriteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	if err := db.Where("product_id = ?", product.ID).Delete(&model.ProductImageModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear product images")
	}

	images := fromProductImages(product.ID, product.Images)
	if len(images) == 0 {
		return nil
	}

	if err := db.Create(&images).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save product images")
	}

	return nil
}

// AdjustStock applies delta in a single guarded statement, so concurrent
// writers can never drive stock below zero.
func (repo *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrInsufficientStock
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to adjust stock")
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check product existence")
	}
	if count == 0 {
		return repository.ErrProductNotFound
	}

	return repository.ErrInsufficientStock
}

func (repo *productRepository) UpdateRating(ctx context.Context, id uuid.UUID, averageRating float64, reviewCount int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"average_rating": averageRating,
			"review_count":   reviewCount,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product rating")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func mapProductWriteError(err error, details string) error {
	if isForeignKeyConstraintViolation(err) {
		return repository.ErrCategoryNotFound
	}
	if isCheckConstraintViolation(err) {
		return repository.ErrInsufficientStock
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	images := make([]string, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, img.URL)
	}

	return &entity.Product{
		ID:            data.ID,
		NameTr:        data.NameTr,
		NameEn:        data.NameEn,
		DescriptionTr: data.DescriptionTr,
		DescriptionEn: data.DescriptionEn,
		Price:         data.Price,
		Stock:         data.Stock,
		Images:        images,
		CategoryID:    data.CategoryID,
		Category:      toCategoryDomain(data.Category),
		Active:        data.Active,
		Featured:      data.Featured,
		AverageRating: data.AverageRating,
		ReviewCount:   data.ReviewCount,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toProductsDomain(data []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(data))
	for _, productM := range data {
		products = append(products, toProductDomain(productM))
	}

	return products
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	if data.ID == uuid.Nil {
		data.ID = uuid.New()
	}

	return &model.ProductModel{
		ID:            data.ID,
		NameTr:        data.NameTr,
		NameEn:        data.NameEn,
		DescriptionTr: data.DescriptionTr,
		DescriptionEn: data.DescriptionEn,
		Price:         data.Price,
		Stock:         data.Stock,
		CategoryID:    data.CategoryID,
		Active:        data.Active,
		Featured:      data.Featured,
		AverageRating: data.AverageRating,
		ReviewCount:   data.ReviewCount,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
		Images:        fromProductImages(data.ID, data.Images),
	}
}

func fromProductImages(productID uuid.UUID, urls []string) []model.ProductImageModel {
	images := make([]model.ProductImageModel, 0, len(urls))
	for i, url := range urls {
		images = append(images, model.ProductImageModel{
			ID:        uuid.New(),
			ProductID: productID,
			URL:       url,
			Position:  i,
		})
	}

	return images
}
