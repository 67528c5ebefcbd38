package impl

import (
	"context"
	"testing"

	"parlaseramik/config"
	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/repository"
	mockService "parlaseramik/internal/mocks/service"
	"parlaseramik/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seedServiceFixtures struct {
	service usecase.SeedUsecase
	store   *memStore
	cache   *memCache
	hasher  *mockService.MockPasswordHasher
}

func createTestSeedService(t *testing.T, seed config.SeedConfig) seedServiceFixtures {
	store := newMemStore()
	cache := newMemCache()
	hasher := mockService.NewMockPasswordHasher(t)

	service := NewSeedService(SeedServiceParams{
		TxManager: store,
		Hasher:    hasher,
		Cache:     cache,
		Config:    newTestConfig(seed),
		Logger:    newDiscardLogger(),
	})

	return seedServiceFixtures{service: service, store: store, cache: cache, hasher: hasher}
}

func TestSeedService_Seed_IsIdempotent(t *testing.T) {
	fx := createTestSeedService(t, config.SeedConfig{
		AdminEmail:     "Admin@ParlaSeramik.com",
		AdminPassword:  "degistir123",
		AdminFirstName: "Parla",
		AdminLastName:  "Yönetici",
		SampleCatalog:  true,
	})
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("degistir123").Return("bcrypt-hash", nil).Once()

	first, err := fx.service.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, first.AdminCreated)
	assert.Equal(t, 3, first.CategoriesCreated)
	assert.Equal(t, 4, first.ProductsCreated)

	second, err := fx.service.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, &usecase.SeedReport{}, second)

	admin, err := fx.store.UserRepo().FindByEmail(ctx, "admin@parlaseramik.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.Enabled)

	assert.Len(t, fx.store.categories, 3)
	assert.Len(t, fx.store.products, 4)
	assert.Contains(t, fx.cache.invalidated, "categories")
	assert.Contains(t, fx.cache.invalidated, "products")
}

func TestSeedService_Seed_SampleMugMatchesCatalog(t *testing.T) {
	fx := createTestSeedService(t, config.SeedConfig{SampleCatalog: true})
	ctx := context.Background()

	report, err := fx.service.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, report.AdminCreated)

	page, err := fx.store.ProductRepo().List(ctx, repository.ProductFilter{Keyword: "El Yapımı Seramik Kupa"}, entity.PageRequest{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	mug := page.Items[0]
	assert.True(t, mustDecimal("250.00").Equal(mug.Price))
	assert.Equal(t, 50, mug.Stock)
	assert.True(t, mug.Featured)
	assert.True(t, mug.Active)
}

func TestSeedService_Seed_WeakAdminPasswordAbortsEverything(t *testing.T) {
	fx := createTestSeedService(t, config.SeedConfig{
		AdminEmail:    "admin@parlaseramik.com",
		AdminPassword: "123",
		SampleCatalog: true,
	})

	_, err := fx.service.Seed(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Empty(t, fx.store.users)
	assert.Empty(t, fx.store.categories)
}
