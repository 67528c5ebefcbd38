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
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	orderNumbers service.OrderNumberGenerator
	cache        service.CatalogCache
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	OrderNumbers service.OrderNumberGenerator
	Cache        service.CatalogCache
	Logger       *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		orderNumbers: params.OrderNumbers,
		cache:        params.Cache,
		logger:       params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create places an order in one transaction. Each product row is locked before
// its stock is checked and decremented, so two checkouts can never both take
// the last units.
func (srv *orderService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("order must contain at least one item")
	}

	order := &entity.Order{
		ID:            uuid.New(),
		OrderNumber:   srv.orderNumbers.Next(),
		UserID:        userID,
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		Notes:         strings.TrimSpace(input.Notes),
		TotalAmount:   decimal.Zero,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		address := newShippingAddress(userID, &input.ShippingAddress)
		if err := repoFactory.AddressRepo().CreateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to save shipping address")
		}
		order.ShippingAddress = address

		productRepo := repoFactory.ProductRepo()
		for _, line := range input.Items {
			item, err := srv.reserve(ctx, productRepo, line)
			if err != nil {
				return err
			}

			order.Items = append(order.Items, item)
			order.TotalAmount = order.TotalAmount.Add(item.Subtotal)
		}

		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to save order")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order placement failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.cache.Invalidate(service.CacheNamespaceProducts)
	srv.log(ctx).Info("Order placed",
		slog.String("orderNumber", order.OrderNumber),
		slog.Any("userID", userID),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)

	return srv.reload(ctx, order.ID)
}

// reserve locks the product row, takes quantity units and snapshots the line.
func (srv *orderService) reserve(ctx context.Context, productRepo repository.ProductRepository, line usecase.OrderItemInput) (*entity.OrderItem, error) {
	if line.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
	}

	product, err := productRepo.FindByIDForUpdate(ctx, line.ProductID)
	if err != nil {
		return nil, mapProductError(err)
	}
	if !product.Active {
		return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %s is inactive", product.ID)
	}
	if !product.HasStock(line.Quantity) {
		return nil, insufficientStock(product, line.Quantity)
	}

	if err := productRepo.AdjustStock(ctx, product.ID, -line.Quantity); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, insufficientStock(product, line.Quantity)
		}

		return nil, mapProductError(err)
	}
	product.Stock -= line.Quantity

	return entity.NewOrderItem(product, line.Quantity), nil
}

// Cancel restores stock and marks a PENDING order CANCELLED. Orders of other
// users are reported as not found.
func (srv *orderService) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error) {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByIDAndUserID(ctx, orderID, userID)
		if err != nil {
			return mapOrderError(err)
		}
		if !order.IsCancellable() {
			return errors.Wrapf(domainerrors.ErrOrderNotCancellable, "order %s is %s", order.OrderNumber, order.Status)
		}

		// The conditional update serialises concurrent cancels of the same order.
		moved, err := orderRepo.CompareAndSetStatus(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusCancelled)
		if err != nil {
			return errors.Wrap(err, "failed to cancel order")
		}
		if !moved {
			return errors.Wrapf(domainerrors.ErrOrderNotCancellable, "order %s changed concurrently", order.OrderNumber)
		}

		productRepo := repoFactory.ProductRepo()
		for _, item := range order.Items {
			if err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return errors.Wrapf(mapProductError(err), "failed to restore stock of %s", item.ProductID)
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}

	srv.cache.Invalidate(service.CacheNamespaceProducts)
	srv.log(ctx).Info("Order cancelled", slog.Any("orderID", orderID), slog.Any("userID", userID))

	return srv.reload(ctx, orderID)
}

func (srv *orderService) ListForUser(ctx context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	if status != nil && !status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInvalidOrderStatus, "status %q", *status)
	}

	orders, err := srv.orderRepo.FindByUserID(ctx, userID, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user orders")
	}

	return orders, nil
}

func (srv *orderService) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		return nil, mapOrderError(err)
	}

	return order, nil
}

func (srv *orderService) ListAll(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Order], error) {
	orders, err := srv.orderRepo.List(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (srv *orderService) Get(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	return srv.reload(ctx, orderID)
}

// UpdateStatus overwrites the status. Any valid value is accepted from any
// state and stock is never touched.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInvalidOrderStatus, "status %q", status)
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, mapOrderError(err)
	}

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", orderID), slog.String("status", status.String()))

	return srv.reload(ctx, orderID)
}

func (srv *orderService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status entity.PaymentStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInvalidPaymentStatus, "payment status %q", status)
	}

	if err := srv.orderRepo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		return nil, mapOrderError(err)
	}

	srv.log(ctx).Info("Order payment status updated", slog.Any("orderID", orderID), slog.String("paymentStatus", status.String()))

	return srv.reload(ctx, orderID)
}

func (srv *orderService) reload(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, mapOrderError(err)
	}

	return order, nil
}

func newShippingAddress(userID uuid.UUID, input *usecase.AddressInput) *entity.Address {
	return &entity.Address{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        input.Title,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        strings.TrimSpace(input.Phone),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		AddressLine2: input.AddressLine2,
		City:         strings.TrimSpace(input.City),
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      strings.TrimSpace(input.Country),
	}
}

func insufficientStock(product *entity.Product, requested int) error {
	return domainerrors.ErrInsufficientStock.WithDetails(
		fmt.Sprintf("%s: stokta %d adet var, %d adet istendi", product.NameTr, product.Stock, requested),
	)
}

func mapOrderError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrOrderNotFound):
		return errors.Wrap(domainerrors.ErrOrderNotFound, err.Error())
	default:
		return errors.Wrap(err, "order repository failure")
	}
}
