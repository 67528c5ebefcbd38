package impl

import (
	"context"
	"fmt"
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

const cacheKeyFeaturedProducts = "featured"

// productService implements the ProductUsecase interface.
type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	cache       service.CatalogCache
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Cache       service.CatalogCache
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		cache:       params.Cache,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) List(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Product], error) {
	key := fmt.Sprintf("list:%d:%d", page.Page, page.Size)
	if !page.Sort.IsDefault() {
		key += fmt.Sprintf(":%s:%t", page.Sort.Field, page.Sort.Desc)
	}

	return cached(srv.cache, key, func() (*entity.Page[*entity.Product], error) {
		return srv.list(ctx, repository.ProductFilter{ActiveOnly: true}, page)
	})
}

func (srv *productService) ListAll(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Product], error) {
	return srv.list(ctx, repository.ProductFilter{}, page)
}

func (srv *productService) ListByCategory(ctx context.Context, categoryID uuid.UUID, page entity.PageRequest) (*entity.Page[*entity.Product], error) {
	return srv.list(ctx, repository.ProductFilter{ActiveOnly: true, CategoryID: categoryID}, page)
}

// Search matches keyword against both names. A blank keyword behaves like List.
func (srv *productService) Search(ctx context.Context, keyword string, page entity.PageRequest) (*entity.Page[*entity.Product], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return srv.List(ctx, page)
	}

	return srv.list(ctx, repository.ProductFilter{ActiveOnly: true, Keyword: keyword}, page)
}

func (srv *productService) list(ctx context.Context, filter repository.ProductFilter, page entity.PageRequest) (*entity.Page[*entity.Product], error) {
	products, err := srv.productRepo.List(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *productService) Featured(ctx context.Context) ([]*entity.Product, error) {
	return cached(srv.cache, cacheKeyFeaturedProducts, func() ([]*entity.Product, error) {
		products, err := srv.productRepo.FindFeatured(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list featured products")
		}

		return products, nil
	})
}

func (srv *productService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return cached(srv.cache, "id:"+id.String(), func() (*entity.Product, error) {
		product, err := srv.productRepo.FindByID(ctx, id)
		if err != nil {
			return nil, mapProductError(err)
		}
		if !product.Active {
			return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %s is inactive", id)
		}

		return product, nil
	})
}

func (srv *productService) AdminGet(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err)
	}

	return product, nil
}

func (srv *productService) Create(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	product := &entity.Product{Active: true}
	applyProductInput(product, input)

	var created *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.CategoryRepo().FindByID(ctx, product.CategoryID); err != nil {
			return mapCategoryError(err)
		}

		productRepo := repoFactory.ProductRepo()
		if err := productRepo.Create(ctx, product); err != nil {
			return mapProductError(err)
		}

		reloaded, err := productRepo.FindByID(ctx, product.ID)
		if err != nil {
			return mapProductError(err)
		}
		created = reloaded

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.cache.Invalidate(service.CacheNamespaceProducts)
	srv.log(ctx).Info("Product created", slog.Any("productID", created.ID), slog.String("nameTr", created.NameTr))

	return created, nil
}

func (srv *productService) Update(ctx context.Context, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	var updated *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return mapProductError(err)
		}

		applyProductInput(product, input)
		if _, err := repoFactory.CategoryRepo().FindByID(ctx, product.CategoryID); err != nil {
			return mapCategoryError(err)
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return mapProductError(err)
		}

		reloaded, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return mapProductError(err)
		}
		updated = reloaded

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.cache.Invalidate(service.CacheNamespaceProducts)

	return updated, nil
}

// Delete deactivates the product so historical orders and reviews keep resolving.
func (srv *productService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return mapProductError(err)
		}

		product.Active = false

		return mapProductError(productRepo.Update(ctx, product))
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.cache.Invalidate(service.CacheNamespaceProducts)
	srv.log(ctx).Info("Product deactivated", slog.Any("productID", id))

	return nil
}

// cached serves key from the products namespace, loading and storing it on a miss.
// A load that overlaps an invalidation is returned but not stored.
func cached[T any](cache service.CatalogCache, key string, load func() (T, error)) (T, error) {
	if value, ok := cache.Get(service.CacheNamespaceProducts, key); ok {
		if typed, ok := value.(T); ok {
			return typed, nil
		}
	}

	generation := cache.Generation(service.CacheNamespaceProducts)
	value, err := load()
	if err != nil {
		return value, err
	}

	cache.Set(service.CacheNamespaceProducts, key, value, generation)

	return value, nil
}

func applyProductInput(product *entity.Product, input *usecase.ProductInput) {
	product.NameTr = strings.TrimSpace(input.NameTr)
	product.NameEn = strings.TrimSpace(input.NameEn)
	product.DescriptionTr = input.DescriptionTr
	product.DescriptionEn = input.DescriptionEn
	product.Price = input.Price
	product.Stock = input.Stock
	product.Images = append([]string(nil), input.Images...)
	product.CategoryID = input.CategoryID
	product.Featured = input.Featured != nil && *input.Featured
}

func mapProductError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrProductNotFound):
		return errors.Wrap(domainerrors.ErrProductNotFound, err.Error())
	case errors.Is(err, repository.ErrCategoryNotFound):
		return errors.Wrap(domainerrors.ErrCategoryNotFound, err.Error())
	case errors.Is(err, repository.ErrInsufficientStock):
		return errors.Wrap(domainerrors.ErrInsufficientStock, err.Error())
	default:
		return errors.Wrap(err, "product repository failure")
	}
}
