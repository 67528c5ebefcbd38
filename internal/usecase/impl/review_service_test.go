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
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFlowFixtures struct {
	service usecase.ReviewUsecase
	store   *memStore
	cache   *memCache
	user    *entity.User
	product *entity.Product
}

func createTestReviewFlow() reviewFlowFixtures {
	store := newMemStore()
	cache := newMemCache()

	category := store.addCategory("Tabaklar", "Plates")
	product := store.addProduct(category.ID, "Desenli Servis Tabağı", "420.00", 30)
	user := store.addUser("zeynep@example.com")

	service := NewReviewService(ReviewServiceParams{
		TxManager:   store,
		ReviewRepo:  store.ReviewRepo(),
		ProductRepo: store.ProductRepo(),
		Cache:       cache,
		Logger:      newDiscardLogger(),
	})

	return reviewFlowFixtures{service: service, store: store, cache: cache, user: user, product: product}
}

func (fx reviewFlowFixtures) submit(t *testing.T, rating int) *entity.Review {
	t.Helper()

	review, err := fx.service.Create(context.Background(), fx.user.ID, &usecase.CreateReviewInput{
		ProductID: fx.product.ID,
		Rating:    rating,
		Comment:   "  Çok güzel  ",
	})
	require.NoError(t, err)

	return review
}

func (fx reviewFlowFixtures) rating(t *testing.T) (float64, int) {
	t.Helper()

	product, err := fx.store.ProductRepo().FindByID(context.Background(), fx.product.ID)
	require.NoError(t, err)

	return product.AverageRating, product.ReviewCount
}

func TestReviewService_Create_StartsUnapproved(t *testing.T) {
	fx := createTestReviewFlow()

	review := fx.submit(t, 5)

	assert.False(t, review.Approved)
	assert.Equal(t, "Çok güzel", review.Comment)
	assert.Equal(t, fx.user.ID, review.UserID)

	average, count := fx.rating(t)
	assert.Zero(t, average)
	assert.Zero(t, count)

	public, err := fx.service.ListApprovedByProduct(context.Background(), fx.product.ID)
	require.NoError(t, err)
	assert.Empty(t, public)
}

func TestReviewService_Approve_RecomputesMeanOfApprovedOnly(t *testing.T) {
	fx := createTestReviewFlow()
	ctx := context.Background()

	five := fx.submit(t, 5)
	three := fx.submit(t, 3)
	fx.submit(t, 1) // stays pending

	_, err := fx.service.Approve(ctx, five.ID)
	require.NoError(t, err)
	average, count := fx.rating(t)
	assert.InDelta(t, 5.0, average, 1e-9)
	assert.Equal(t, 1, count)

	approved, err := fx.service.Approve(ctx, three.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	average, count = fx.rating(t)
	assert.InDelta(t, 4.0, average, 1e-9)
	assert.Equal(t, 2, count)
	assert.Contains(t, fx.cache.invalidated, "products")

	public, err := fx.service.ListApprovedByProduct(ctx, fx.product.ID)
	require.NoError(t, err)
	assert.Len(t, public, 2)
}

func TestReviewService_Delete_RecomputesRating(t *testing.T) {
	fx := createTestReviewFlow()
	ctx := context.Background()

	five := fx.submit(t, 5)
	two := fx.submit(t, 2)
	_, err := fx.service.Approve(ctx, five.ID)
	require.NoError(t, err)
	_, err = fx.service.Approve(ctx, two.ID)
	require.NoError(t, err)

	require.NoError(t, fx.service.Delete(ctx, five.ID))
	average, count := fx.rating(t)
	assert.InDelta(t, 2.0, average, 1e-9)
	assert.Equal(t, 1, count)

	require.NoError(t, fx.service.Delete(ctx, two.ID))
	average, count = fx.rating(t)
	assert.Zero(t, average)
	assert.Zero(t, count)
}

func TestReviewService_Reply_KeepsApprovalState(t *testing.T) {
	fx := createTestReviewFlow()

	review := fx.submit(t, 4)

	replied, err := fx.service.Reply(context.Background(), review.ID, " Teşekkürler! ")
	require.NoError(t, err)
	assert.Equal(t, "Teşekkürler!", replied.AdminReply)
	assert.False(t, replied.Approved)
}

func TestReviewService_ListPending(t *testing.T) {
	fx := createTestReviewFlow()
	ctx := context.Background()

	approved := fx.submit(t, 4)
	pending := fx.submit(t, 2)
	_, err := fx.service.Approve(ctx, approved.ID)
	require.NoError(t, err)

	page, err := fx.service.ListPending(ctx, entity.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, pending.ID, page.Items[0].ID)

	all, err := fx.service.List(ctx, entity.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	mine, err := fx.service.ListForUser(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

// reviewServiceFixtures holds the mocked dependencies for review service tests.
type reviewServiceFixtures struct {
	service     usecase.ReviewUsecase
	txManager   *mockRepo.MockTransactionManager
	reviewRepo  *mockRepo.MockReviewRepository
	productRepo *mockRepo.MockProductRepository
	cache       *mockService.MockCatalogCache
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	reviewRepo := mockRepo.NewMockReviewRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	cache := mockService.NewMockCatalogCache(t)

	service := NewReviewService(ReviewServiceParams{
		TxManager:   txManager,
		ReviewRepo:  reviewRepo,
		ProductRepo: productRepo,
		Cache:       cache,
		Logger:      newDiscardLogger(),
	})

	return reviewServiceFixtures{
		service:     service,
		txManager:   txManager,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		cache:       cache,
	}
}

func TestReviewService_Create_RatingOutOfRange(t *testing.T) {
	fx := createTestReviewService(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := fx.service.Create(context.Background(), uuid.New(), &usecase.CreateReviewInput{
			ProductID: uuid.New(),
			Rating:    rating,
		})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed, "rating %d", rating)
	}
}

func TestReviewService_Create_UnknownProduct(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.Create(ctx, uuid.New(), &usecase.CreateReviewInput{ProductID: productID, Rating: 4})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestReviewService_Approve_MissingReview(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	reviewID := uuid.New()

	txFactory := mockRepo.NewMockRepositoryFactory(t)
	txReviewRepo := mockRepo.NewMockReviewRepository(t)
	txFactory.EXPECT().ReviewRepo().Return(txReviewRepo)
	txReviewRepo.EXPECT().FindByID(ctx, reviewID).Return(nil, repository.ErrReviewNotFound)

	fx.txManager.EXPECT().
		Execute(ctx, mockAnyTxFunc).
		RunAndReturn(runWith(txFactory))

	_, err := fx.service.Approve(ctx, reviewID)
	assert.ErrorIs(t, err, domainerrors.ErrReviewNotFound)
	fx.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestReviewService_Reply_RepositoryFailure(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	reviewID := uuid.New()
	dbErr := errors.New("connection reset")

	fx.reviewRepo.EXPECT().SetAdminReply(ctx, reviewID, "ok").Return(dbErr)

	_, err := fx.service.Reply(ctx, reviewID, "ok")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}
