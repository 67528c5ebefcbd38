// Package impl contains the implementation of the application's business logic.
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

const cacheKeyActiveCategories = "active"

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	cache        service.CatalogCache
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Cache        service.CatalogCache
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		cache:        params.Cache,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) ListActive(ctx context.Context) ([]*entity.Category, error) {
	if cached, ok := srv.cache.Get(service.CacheNamespaceCategories, cacheKeyActiveCategories); ok {
		if categories, ok := cached.([]*entity.Category); ok {
			return categories, nil
		}
	}

	generation := srv.cache.Generation(service.CacheNamespaceCategories)
	categories, err := srv.categoryRepo.FindActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active categories")
	}

	srv.cache.Set(service.CacheNamespaceCategories, cacheKeyActiveCategories, categories, generation)

	return categories, nil
}

func (srv *categoryService) ListAll(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) Get(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	key := id.String()
	if cached, ok := srv.cache.Get(service.CacheNamespaceCategories, key); ok {
		if category, ok := cached.(*entity.Category); ok {
			return category, nil
		}
	}

	generation := srv.cache.Generation(service.CacheNamespaceCategories)
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCategoryError(err)
	}

	srv.cache.Set(service.CacheNamespaceCategories, key, category, generation)

	return category, nil
}

func (srv *categoryService) Create(ctx context.Context, input *usecase.CategoryInput) (*entity.Category, error) {
	category := &entity.Category{Active: true}
	applyCategoryInput(category, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		if err := srv.ensureUniqueNames(ctx, categoryRepo, category, uuid.Nil); err != nil {
			return err
		}

		if err := categoryRepo.Create(ctx, category); err != nil {
			return mapCategoryError(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.invalidate()
	srv.log(ctx).Info("Category created", slog.Any("categoryID", category.ID), slog.String("nameTr", category.NameTr))

	return category, nil
}

func (srv *categoryService) Update(ctx context.Context, id uuid.UUID, input *usecase.CategoryInput) (*entity.Category, error) {
	var updated *entity.Category

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		category, err := categoryRepo.FindByID(ctx, id)
		if err != nil {
			return mapCategoryError(err)
		}

		applyCategoryInput(category, input)
		if err := srv.ensureUniqueNames(ctx, categoryRepo, category, id); err != nil {
			return err
		}

		if err := categoryRepo.Update(ctx, category); err != nil {
			return mapCategoryError(err)
		}
		updated = category

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	srv.invalidate()

	return updated, nil
}

// Delete deactivates the category. Its products are left untouched.
func (srv *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		category, err := categoryRepo.FindByID(ctx, id)
		if err != nil {
			return mapCategoryError(err)
		}

		category.Active = false

		return mapCategoryError(categoryRepo.Update(ctx, category))
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	srv.invalidate()
	srv.log(ctx).Info("Category deactivated", slog.Any("categoryID", id))

	return nil
}

func (srv *categoryService) ensureUniqueNames(ctx context.Context, repo repository.CategoryRepository, category *entity.Category, excludeID uuid.UUID) error {
	exists, err := repo.ExistsByNameTr(ctx, category.NameTr, excludeID)
	if err != nil {
		return errors.Wrap(err, "failed to check category name")
	}
	if exists {
		return errors.Wrapf(domainerrors.ErrCategoryAlreadyExists, "name_tr %q", category.NameTr)
	}

	exists, err = repo.ExistsByNameEn(ctx, category.NameEn, excludeID)
	if err != nil {
		return errors.Wrap(err, "failed to check category name")
	}
	if exists {
		return errors.Wrapf(domainerrors.ErrCategoryAlreadyExists, "name_en %q", category.NameEn)
	}

	return nil
}

// invalidate drops products too, since product views embed category names.
func (srv *categoryService) invalidate() {
	srv.cache.Invalidate(service.CacheNamespaceCategories, service.CacheNamespaceProducts)
}

func applyCategoryInput(category *entity.Category, input *usecase.CategoryInput) {
	category.NameTr = strings.TrimSpace(input.NameTr)
	category.NameEn = strings.TrimSpace(input.NameEn)
	category.DescriptionTr = input.DescriptionTr
	category.DescriptionEn = input.DescriptionEn
}

func mapCategoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrCategoryNotFound):
		return errors.Wrap(domainerrors.ErrCategoryNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateCategory):
		return errors.Wrap(domainerrors.ErrCategoryAlreadyExists, err.Error())
	default:
		return errors.Wrap(err, "category repository failure")
	}
}
