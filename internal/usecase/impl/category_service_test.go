package impl

import (
	"context"
	"testing"

	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/repository"
	mockRepo "parlaseramik/internal/mocks/repository"
	mockService "parlaseramik/internal/mocks/service"
	"parlaseramik/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// categoryServiceFixtures holds all test dependencies for category service tests.
type categoryServiceFixtures struct {
	service      usecase.CategoryUsecase
	txManager    *mockRepo.MockTransactionManager
	txFactory    *mockRepo.MockRepositoryFactory
	categoryRepo *mockRepo.MockCategoryRepository
	cache        *mockService.MockCatalogCache
}

func createTestCategoryService(t *testing.T) categoryServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	txFactory := mockRepo.NewMockRepositoryFactory(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	cache := mockService.NewMockCatalogCache(t)

	service := NewCategoryService(CategoryServiceParams{
		TxManager:    txManager,
		CategoryRepo: categoryRepo,
		Cache:        cache,
		Logger:       newDiscardLogger(),
	})

	return categoryServiceFixtures{
		service:      service,
		txManager:    txManager,
		txFactory:    txFactory,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// inTx routes the transaction to the same category mock.
func (fx categoryServiceFixtures) inTx(ctx context.Context) {
	fx.txFactory.EXPECT().CategoryRepo().Return(fx.categoryRepo)
	fx.txManager.EXPECT().Execute(ctx, mockAnyTxFunc).RunAndReturn(runWith(fx.txFactory))
}

func TestCategoryService_ListActive_CachesResult(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	categories := []*entity.Category{{ID: uuid.New(), NameTr: "Kupalar", Active: true}}

	fx.cache.EXPECT().Get("categories", "active").Return(nil, false).Once()
	fx.cache.EXPECT().Generation("categories").Return(uint64(1)).Once()
	fx.categoryRepo.EXPECT().FindActive(ctx).Return(categories, nil).Once()
	fx.cache.EXPECT().Set("categories", "active", categories, uint64(1)).Return().Once()

	got, err := fx.service.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, got)

	fx.cache.EXPECT().Get("categories", "active").Return(categories, true).Once()

	again, err := fx.service.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, again)
}

func TestCategoryService_Create_Success(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	fx.inTx(ctx)

	fx.categoryRepo.EXPECT().ExistsByNameTr(ctx, "Kupalar", uuid.Nil).Return(false, nil)
	fx.categoryRepo.EXPECT().ExistsByNameEn(ctx, "Mugs", uuid.Nil).Return(false, nil)
	fx.categoryRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Category")).
		RunAndReturn(func(_ context.Context, c *entity.Category) error {
			c.ID = uuid.New()

			return nil
		})
	fx.cache.EXPECT().Invalidate("categories", "products").Return()

	category, err := fx.service.Create(ctx, &usecase.CategoryInput{NameTr: " Kupalar ", NameEn: "Mugs"})
	require.NoError(t, err)
	assert.Equal(t, "Kupalar", category.NameTr)
	assert.True(t, category.Active)
	assert.NotEqual(t, uuid.Nil, category.ID)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	fx.inTx(ctx)

	fx.categoryRepo.EXPECT().ExistsByNameTr(ctx, "Kupalar", uuid.Nil).Return(false, nil)
	fx.categoryRepo.EXPECT().ExistsByNameEn(ctx, "Mugs", uuid.Nil).Return(true, nil)

	_, err := fx.service.Create(ctx, &usecase.CategoryInput{NameTr: "Kupalar", NameEn: "Mugs"})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryAlreadyExists)
	fx.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_UniqueViolationFromDatabase(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	fx.inTx(ctx)

	fx.categoryRepo.EXPECT().ExistsByNameTr(ctx, mock.Anything, uuid.Nil).Return(false, nil)
	fx.categoryRepo.EXPECT().ExistsByNameEn(ctx, mock.Anything, uuid.Nil).Return(false, nil)
	fx.categoryRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicateCategory)

	_, err := fx.service.Create(ctx, &usecase.CategoryInput{NameTr: "Kupalar", NameEn: "Mugs"})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryAlreadyExists)
}

func TestCategoryService_Update_ExcludesItselfFromUniqueness(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	id := uuid.New()
	fx.inTx(ctx)

	fx.categoryRepo.EXPECT().FindByID(ctx, id).Return(&entity.Category{ID: id, NameTr: "Kupalar", NameEn: "Mugs", Active: true}, nil)
	fx.categoryRepo.EXPECT().ExistsByNameTr(ctx, "Kupalar", id).Return(false, nil)
	fx.categoryRepo.EXPECT().ExistsByNameEn(ctx, "Cups", id).Return(false, nil)
	fx.categoryRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	fx.cache.EXPECT().Invalidate("categories", "products").Return()

	updated, err := fx.service.Update(ctx, id, &usecase.CategoryInput{NameTr: "Kupalar", NameEn: "Cups"})
	require.NoError(t, err)
	assert.Equal(t, "Cups", updated.NameEn)
}

func TestCategoryService_Delete_IsSoft(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	id := uuid.New()
	fx.inTx(ctx)

	fx.categoryRepo.EXPECT().FindByID(ctx, id).Return(&entity.Category{ID: id, Active: true}, nil)
	fx.categoryRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(c *entity.Category) bool { return c.ID == id && !c.Active })).
		Return(nil)
	fx.cache.EXPECT().Invalidate("categories", "products").Return()

	require.NoError(t, fx.service.Delete(ctx, id))
}

func TestCategoryService_Get_NotFound(t *testing.T) {
	fx := createTestCategoryService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.cache.EXPECT().Get("categories", id.String()).Return(nil, false)
	fx.cache.EXPECT().Generation("categories").Return(uint64(0))
	fx.categoryRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrCategoryNotFound)

	_, err := fx.service.Get(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}
