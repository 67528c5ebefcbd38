package impl

import (
	"context"
	"log/slog"

	"parlaseramik/config"
	deliverycontext "parlaseramik/internal/delivery/context"
	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/repository"
	"parlaseramik/internal/domain/service"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type sampleProduct struct {
	nameTr, nameEn               string
	descriptionTr, descriptionEn string
	price                        string
	stock                        int
	featured                     bool
	image                        string
}

type sampleCategory struct {
	nameTr, nameEn               string
	descriptionTr, descriptionEn string
	products                     []sampleProduct
}

var sampleCatalog = []sampleCategory{
	{
		nameTr: "Kupalar", nameEn: "Mugs",
		descriptionTr: "El yapımı seramik kupalar", descriptionEn: "Handmade ceramic mugs",
		products: []sampleProduct{
			{
				nameTr: "El Yapımı Seramik Kupa", nameEn: "Handmade Ceramic Mug",
				descriptionTr: "Çarkta şekillendirilmiş, sırlı kupa", descriptionEn: "Wheel-thrown glazed mug",
				price: "250.00", stock: 50, featured: true,
				image: "https://cdn.parlaseramik.com/products/kupa-01.jpg",
			},
			{
				nameTr: "Espresso Fincanı", nameEn: "Espresso Cup",
				descriptionTr: "Küçük boy mat sırlı fincan", descriptionEn: "Small matte-glazed cup",
				price: "180.00", stock: 40,
				image: "https://cdn.parlaseramik.com/products/fincan-01.jpg",
			},
		},
	},
	{
		nameTr: "Tabaklar", nameEn: "Plates",
		descriptionTr: "Servis ve yemek tabakları", descriptionEn: "Serving and dinner plates",
		products: []sampleProduct{
			{
				nameTr: "Desenli Servis Tabağı", nameEn: "Patterned Serving Plate",
				descriptionTr: "Elle boyanmış servis tabağı", descriptionEn: "Hand-painted serving plate",
				price: "420.00", stock: 30,
				image: "https://cdn.parlaseramik.com/products/tabak-01.jpg",
			},
		},
	},
	{
		nameTr: "Vazolar", nameEn: "Vases",
		descriptionTr: "Dekoratif seramik vazolar", descriptionEn: "Decorative ceramic vases",
		products: []sampleProduct{
			{
				nameTr: "Sırlı Seramik Vazo", nameEn: "Glazed Ceramic Vase",
				descriptionTr: "Reaktif sırlı uzun vazo", descriptionEn: "Tall vase with reactive glaze",
				price: "680.00", stock: 15, featured: true,
				image: "https://cdn.parlaseramik.com/products/vazo-01.jpg",
			},
		},
	},
}

// seedService implements the SeedUsecase interface.
type seedService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	cache     service.CatalogCache
	seedCfg   config.SeedConfig
	logger    *slog.Logger
}

// SeedServiceParams holds dependencies for SeedService, injected by Fx.
type SeedServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Cache     service.CatalogCache
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSeedService is the constructor for seedService.
func NewSeedService(params SeedServiceParams) usecase.SeedUsecase {
	return &seedService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		cache:     params.Cache,
		seedCfg:   params.Config.Seed,
		logger:    params.Logger,
	}
}

func (srv *seedService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Seed runs in a single transaction and can be repeated safely.
func (srv *seedService) Seed(ctx context.Context) (*usecase.SeedReport, error) {
	report := &usecase.SeedReport{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		created, err := srv.seedAdmin(ctx, repoFactory.UserRepo())
		if err != nil {
			return err
		}
		report.AdminCreated = created

		if !srv.seedCfg.SampleCatalog {
			return nil
		}

		return srv.seedCatalog(ctx, repoFactory, report)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to seed database")
	}

	srv.cache.Invalidate(service.CacheNamespaceCategories, service.CacheNamespaceProducts)
	srv.log(ctx).Info("Seed completed",
		slog.Bool("adminCreated", report.AdminCreated),
		slog.Int("categoriesCreated", report.CategoriesCreated),
		slog.Int("productsCreated", report.ProductsCreated),
	)

	return report, nil
}

func (srv *seedService) seedAdmin(ctx context.Context, userRepo repository.UserRepository) (bool, error) {
	email := normalizeEmail(srv.seedCfg.AdminEmail)
	if email == "" {
		srv.log(ctx).Warn("No admin email configured, skipping admin seed")

		return false, nil
	}
	if len(srv.seedCfg.AdminPassword) < minPasswordLength {
		return false, domainerrors.ErrValidationFailed.WithDetails("seed.adminPassword must be at least 6 characters")
	}

	_, err := userRepo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return false, errors.Wrap(err, "failed to look up admin")
	}

	hash, err := srv.hasher.Hash(srv.seedCfg.AdminPassword)
	if err != nil {
		return false, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	admin := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    srv.seedCfg.AdminFirstName,
		LastName:     srv.seedCfg.AdminLastName,
		Role:         entity.RoleAdmin,
		Enabled:      true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return false, mapUserError(err)
	}

	return true, nil
}

func (srv *seedService) seedCatalog(ctx context.Context, repoFactory repository.RepositoryFactory, report *usecase.SeedReport) error {
	categoryRepo := repoFactory.CategoryRepo()
	productRepo := repoFactory.ProductRepo()

	existing, err := categoryRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load categories")
	}
	byName := make(map[string]*entity.Category, len(existing))
	for _, c := range existing {
		byName[c.NameTr] = c
	}

	for _, sample := range sampleCatalog {
		category, ok := byName[sample.nameTr]
		if !ok {
			category = &entity.Category{
				ID:            uuid.New(),
				NameTr:        sample.nameTr,
				NameEn:        sample.nameEn,
				DescriptionTr: sample.descriptionTr,
				DescriptionEn: sample.descriptionEn,
				Active:        true,
			}
			if err := categoryRepo.Create(ctx, category); err != nil {
				return mapCategoryError(err)
			}
			report.CategoriesCreated++
		}

		for _, p := range sample.products {
			created, err := seedProduct(ctx, productRepo, category.ID, p)
			if err != nil {
				return err
			}
			if created {
				report.ProductsCreated++
			}
		}
	}

	return nil
}

func seedProduct(ctx context.Context, productRepo repository.ProductRepository, categoryID uuid.UUID, sample sampleProduct) (bool, error) {
	matches, err := productRepo.List(ctx,
		repository.ProductFilter{CategoryID: categoryID, Keyword: sample.nameTr},
		entity.PageRequest{Page: 0, Size: 50},
	)
	if err != nil {
		return false, errors.Wrap(err, "failed to look up sample product")
	}
	for _, m := range matches.Items {
		if m.NameTr == sample.nameTr {
			return false, nil
		}
	}

	product := &entity.Product{
		ID:            uuid.New(),
		NameTr:        sample.nameTr,
		NameEn:        sample.nameEn,
		DescriptionTr: sample.descriptionTr,
		DescriptionEn: sample.descriptionEn,
		Price:         decimal.RequireFromString(sample.price),
		Stock:         sample.stock,
		Images:        []string{sample.image},
		CategoryID:    categoryID,
		Active:        true,
		Featured:      sample.featured,
	}
	if err := productRepo.Create(ctx, product); err != nil {
		return false, mapProductError(err)
	}

	return true, nil
}
