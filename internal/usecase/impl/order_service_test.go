package impl

import (
	"context"
	"sync"
	"sync/atomic"
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

// orderFlowFixtures runs the real service against the in-memory store.
type orderFlowFixtures struct {
	service usecase.OrderUsecase
	store   *memStore
	cache   *memCache
	user    *entity.User
	mug     *entity.Product
	vase    *entity.Product
}

func createTestOrderFlow() orderFlowFixtures {
	store := newMemStore()
	cache := newMemCache()

	category := store.addCategory("Kupalar", "Mugs")
	mug := store.addProduct(category.ID, "El Yapımı Seramik Kupa", "250.00", 50)
	vase := store.addProduct(category.ID, "Sırlı Seramik Vazo", "680.00", 2)
	user := store.addUser("ayse@example.com")

	service := NewOrderService(OrderServiceParams{
		TxManager:    store,
		OrderRepo:    store.OrderRepo(),
		OrderNumbers: &sequentialOrderNumbers{},
		Cache:        cache,
		Logger:       newDiscardLogger(),
	})

	return orderFlowFixtures{
		service: service,
		store:   store,
		cache:   cache,
		user:    user,
		mug:     mug,
		vase:    vase,
	}
}

func newOrderInput(lines ...usecase.OrderItemInput) *usecase.CreateOrderInput {
	return &usecase.CreateOrderInput{
		Items: lines,
		ShippingAddress: usecase.AddressInput{
			Title:        "Ev",
			FullName:     " Ayşe Yılmaz ",
			Phone:        "+90 555 000 0000",
			AddressLine1: "Bağdat Cad. No:1",
			City:         "İstanbul",
			Country:      "Türkiye",
		},
		Notes: "Hediye paketi lütfen",
	}
}

func line(productID uuid.UUID, quantity int) usecase.OrderItemInput {
	return usecase.OrderItemInput{ProductID: productID, Quantity: quantity}
}

func TestOrderService_Create_DecrementsStockAndSnapshotsPrice(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 3)))
	require.NoError(t, err)

	assert.Equal(t, 47, fx.store.stock(fx.mug.ID))
	assert.True(t, mustDecimal("750.00").Equal(order.TotalAmount), "total was %s", order.TotalAmount)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Regexp(t, `^PS-[0-9A-F]{8}$`, order.OrderNumber)
	assert.Equal(t, fx.user.ID, order.UserID)
	assert.Equal(t, "Hediye paketi lütfen", order.Notes)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, fx.mug.ID, item.ProductID)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, mustDecimal("250.00").Equal(item.Price))
	assert.True(t, mustDecimal("750.00").Equal(item.Subtotal))
	assert.Equal(t, "El Yapımı Seramik Kupa", item.ProductName)

	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "Ayşe Yılmaz", order.ShippingAddress.FullName)
	assert.Equal(t, fx.user.ID, order.ShippingAddress.UserID)

	assert.Contains(t, fx.cache.invalidated, "products")
}

func TestOrderService_Create_TotalIsSumOfLines(t *testing.T) {
	fx := createTestOrderFlow()

	order, err := fx.service.Create(context.Background(), fx.user.ID,
		newOrderInput(line(fx.mug.ID, 2), line(fx.vase.ID, 1)))
	require.NoError(t, err)

	assert.True(t, mustDecimal("1180.00").Equal(order.TotalAmount), "total was %s", order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, fx.mug.ID, order.Items[0].ProductID)
	assert.Equal(t, fx.vase.ID, order.Items[1].ProductID)
	assert.Equal(t, 48, fx.store.stock(fx.mug.ID))
	assert.Equal(t, 1, fx.store.stock(fx.vase.ID))
}

func TestOrderService_Create_InsufficientStockLeavesStockUntouched(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 60)))
	require.Error(t, err)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	assert.Equal(t, 50, fx.store.stock(fx.mug.ID))

	orders, err := fx.service.ListForUser(ctx, fx.user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_Create_FailedLineRollsBackEarlierLines(t *testing.T) {
	fx := createTestOrderFlow()

	_, err := fx.service.Create(context.Background(), fx.user.ID,
		newOrderInput(line(fx.mug.ID, 5), line(fx.vase.ID, 3)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	assert.Equal(t, 50, fx.store.stock(fx.mug.ID))
	assert.Equal(t, 2, fx.store.stock(fx.vase.ID))
	assert.Empty(t, fx.store.addresses)
}

func TestOrderService_Create_RejectsUnknownAndInactiveProducts(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	_, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(uuid.New(), 1)))
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	inactive := *fx.mug
	inactive.Active = false
	require.NoError(t, fx.store.ProductRepo().Update(ctx, &inactive))

	_, err = fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 1)))
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	assert.Equal(t, 50, fx.store.stock(fx.mug.ID))
}

func TestOrderService_Create_ValidatesInput(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	_, err := fx.service.Create(ctx, fx.user.ID, newOrderInput())
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 0)))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Equal(t, 50, fx.store.stock(fx.mug.ID))
}

func TestOrderService_Create_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	const buyers = 8
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.vase.ID, 1)))
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 2, succeeded.Load())
	assert.EqualValues(t, buyers-2, rejected.Load())
	assert.Equal(t, 0, fx.store.stock(fx.vase.ID))
}

func TestOrderService_Create_LaterPriceChangeKeepsSnapshot(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 1)))
	require.NoError(t, err)

	repriced, err := fx.store.ProductRepo().FindByID(ctx, fx.mug.ID)
	require.NoError(t, err)
	repriced.Price = mustDecimal("999.00")
	require.NoError(t, fx.store.ProductRepo().Update(ctx, repriced))

	reloaded, err := fx.service.GetForUser(ctx, order.ID, fx.user.ID)
	require.NoError(t, err)
	assert.True(t, mustDecimal("250.00").Equal(reloaded.TotalAmount))
	assert.True(t, mustDecimal("250.00").Equal(reloaded.Items[0].Price))
}

func TestOrderService_Cancel_RestoresStock(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 3)))
	require.NoError(t, err)
	require.Equal(t, 47, fx.store.stock(fx.mug.ID))

	cancelled, err := fx.service.Cancel(ctx, order.ID, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 50, fx.store.stock(fx.mug.ID))
}

func TestOrderService_SoftDeletedCatalogKeepsOrderHistory(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()
	page := entity.PageRequest{Size: 20}

	products := NewProductService(ProductServiceParams{
		TxManager:   fx.store,
		ProductRepo: fx.store.ProductRepo(),
		Cache:       fx.cache,
		Logger:      newDiscardLogger(),
	})
	categories := NewCategoryService(CategoryServiceParams{
		TxManager:    fx.store,
		CategoryRepo: fx.store.CategoryRepo(),
		Cache:        fx.cache,
		Logger:       newDiscardLogger(),
	})

	// warm the caches so the deletes must invalidate them
	_, err := products.List(ctx, page)
	require.NoError(t, err)
	_, err = categories.ListActive(ctx)
	require.NoError(t, err)

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 2)))
	require.NoError(t, err)
	require.Equal(t, 48, fx.store.stock(fx.mug.ID))

	require.NoError(t, products.Delete(ctx, fx.mug.ID))
	require.NoError(t, categories.Delete(ctx, fx.mug.CategoryID))

	history, err := fx.service.GetForUser(ctx, order.ID, fx.user.ID)
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	item := history.Items[0]
	assert.Equal(t, fx.mug.ID, item.ProductID)
	assert.Equal(t, "El Yapımı Seramik Kupa", item.ProductName)
	assert.True(t, mustDecimal("250.00").Equal(item.Price))
	assert.True(t, mustDecimal("500.00").Equal(item.Subtotal))
	assert.True(t, mustDecimal("500.00").Equal(history.TotalAmount))

	listed, err := products.List(ctx, page)
	require.NoError(t, err)
	for _, p := range listed.Items {
		assert.NotEqual(t, fx.mug.ID, p.ID)
	}
	assert.EqualValues(t, 1, listed.Total)

	active, err := categories.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	cancelled, err := fx.service.Cancel(ctx, order.ID, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 50, fx.store.stock(fx.mug.ID))
}

func TestOrderService_Cancel_SecondCancelIsRejected(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 3)))
	require.NoError(t, err)

	_, err = fx.service.Cancel(ctx, order.ID, fx.user.ID)
	require.NoError(t, err)

	_, err = fx.service.Cancel(ctx, order.ID, fx.user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotCancellable)
	assert.Equal(t, 50, fx.store.stock(fx.mug.ID))
}

func TestOrderService_Cancel_OnlyPendingOrders(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 3)))
	require.NoError(t, err)

	_, err = fx.service.UpdateStatus(ctx, order.ID, entity.OrderStatusShipped)
	require.NoError(t, err)

	_, err = fx.service.Cancel(ctx, order.ID, fx.user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotCancellable)
	assert.Equal(t, 47, fx.store.stock(fx.mug.ID))

	reloaded, err := fx.service.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, reloaded.Status)
}

func TestOrderService_OtherUsersOrdersAreNotFound(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()
	stranger := fx.store.addUser("mehmet@example.com")

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 1)))
	require.NoError(t, err)

	_, err = fx.service.GetForUser(ctx, order.ID, stranger.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	_, err = fx.service.Cancel(ctx, order.ID, stranger.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	assert.Equal(t, 49, fx.store.stock(fx.mug.ID))
}

func TestOrderService_ListForUser_FiltersByStatus(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	first, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 1)))
	require.NoError(t, err)
	second, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 1)))
	require.NoError(t, err)
	_, err = fx.service.Cancel(ctx, first.ID, fx.user.ID)
	require.NoError(t, err)

	all, err := fx.service.ListForUser(ctx, fx.user.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	pending := entity.OrderStatusPending
	onlyPending, err := fx.service.ListForUser(ctx, fx.user.ID, &pending)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, second.ID, onlyPending[0].ID)

	bogus := entity.OrderStatus("LOST")
	_, err = fx.service.ListForUser(ctx, fx.user.ID, &bogus)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
}

func TestOrderService_UpdateStatus_AcceptsAnyValidTransition(t *testing.T) {
	fx := createTestOrderFlow()
	ctx := context.Background()

	order, err := fx.service.Create(ctx, fx.user.ID, newOrderInput(line(fx.mug.ID, 2)))
	require.NoError(t, err)
	_, err = fx.service.Cancel(ctx, order.ID, fx.user.ID)
	require.NoError(t, err)

	delivered, err := fx.service.UpdateStatus(ctx, order.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, delivered.Status)
	assert.Equal(t, 50, fx.store.stock(fx.mug.ID), "admin status changes never move stock")

	paid, err := fx.service.UpdatePaymentStatus(ctx, order.ID, entity.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, entity.OrderStatusDelivered, paid.Status)
}

// orderServiceFixtures holds the mocked dependencies for order service tests.
type orderServiceFixtures struct {
	service      usecase.OrderUsecase
	txManager    *mockRepo.MockTransactionManager
	orderRepo    *mockRepo.MockOrderRepository
	orderNumbers *mockService.MockOrderNumberGenerator
	cache        *mockService.MockCatalogCache
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderNumbers := mockService.NewMockOrderNumberGenerator(t)
	cache := mockService.NewMockCatalogCache(t)

	service := NewOrderService(OrderServiceParams{
		TxManager:    txManager,
		OrderRepo:    orderRepo,
		OrderNumbers: orderNumbers,
		Cache:        cache,
		Logger:       newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:      service,
		txManager:    txManager,
		orderRepo:    orderRepo,
		orderNumbers: orderNumbers,
		cache:        cache,
	}
}

func TestOrderService_UpdateStatus_RejectsUnknownValues(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	_, err := fx.service.UpdateStatus(ctx, uuid.New(), entity.OrderStatus("RETURNED"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)

	_, err = fx.service.UpdatePaymentStatus(ctx, uuid.New(), entity.PaymentStatus("CHARGEBACK"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPaymentStatus)
}

func TestOrderService_UpdateStatus_MissingOrder(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		UpdateStatus(ctx, orderID, entity.OrderStatusConfirmed).
		Return(repository.ErrOrderNotFound)

	_, err := fx.service.UpdateStatus(ctx, orderID, entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_Create_TransactionFailureIsNotCached(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.orderNumbers.EXPECT().Next().Return("PS-0000ABCD")
	fx.txManager.EXPECT().
		Execute(ctx, mock.Anything).
		Return(repository.ErrProductNotFound)

	_, err := fx.service.Create(ctx, uuid.New(), newOrderInput(line(uuid.New(), 1)))
	require.Error(t, err)
	fx.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}
