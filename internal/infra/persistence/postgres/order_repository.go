package postgres

import (
	"context"
	"slices"

	"parlaseramik/internal/domain/entity"
	domainerrors "parlaseramik/internal/domain/errors"
	"parlaseramik/internal/domain/repository"
	"parlaseramik/internal/errors"
	"parlaseramik/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (repo *orderRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("User").
		Preload("ShippingAddress").
		Preload("Items", preloadItems).
		Preload("Items.Product").
		Preload("Items.Product.Images", preloadImages)
}

// Create inserts the order and its item rows. Owner, address and products are
// referenced by id only.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).
		Omit("User", "ShippingAddress", "Items.Product").
		Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID reads from the primary so a just-written order is always visible.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.first(repo.withAssociations(ctx).
		Clauses(dbresolver.Write).
		Where("id = ?", id))
}

func (repo *orderRepository) FindByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	return repo.first(repo.withAssociations(ctx).
		Clauses(dbresolver.Write).
		Where("id = ? AND user_id = ?", id, userID))
}

func (repo *orderRepository) first(query *gorm.DB) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := query.First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	query := repo.withAssociations(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", status.String())
	}

	var orderModels []*model.OrderModel
	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return toOrdersDomain(orderModels), nil
}

func (repo *orderRepository) List(ctx context.Context, page entity.PageRequest) (*entity.Page[*entity.Order], error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	if err := repo.withAssociations(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &entity.Page[*entity.Order]{
		Items: toOrdersDomain(orderModels),
		Page:  page.Page,
		Size:  page.Size,
		Total: total,
	}, nil
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return repo.updateColumn(ctx, id, "status", status.String())
}

func (repo *orderRepository) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Update("status", to.String())

	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to transition order status")
	}

	return result.RowsAffected > 0, nil
}

func (repo *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	return repo.updateColumn(ctx, id, "payment_status", status.String())
}

func (repo *orderRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update(column, value)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order "+column)
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := slices.Clone(data.Items)
	slices.SortFunc(items, func(a, b model.OrderItemModel) int { return a.Position - b.Position })

	order := &entity.Order{
		ID:              data.ID,
		OrderNumber:     data.OrderNumber,
		UserID:          data.UserID,
		ShippingAddress: toAddressDomain(data.ShippingAddress),
		Items:           make([]*entity.OrderItem, 0, len(items)),
		TotalAmount:     data.TotalAmount,
		Status:          entity.OrderStatus(data.Status),
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		PaymentID:       data.PaymentID,
		TrackingNumber:  data.TrackingNumber,
		Notes:           data.Notes,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
	if data.User != nil {
		order.UserEmail = data.User.Email
	}

	for i := range items {
		order.Items = append(order.Items, toOrderItemDomain(&items[i]))
	}

	return order
}

func toOrdersDomain(data []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for _, orderM := range data {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	item := &entity.OrderItem{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Price:     data.Price,
		Subtotal:  data.Subtotal,
	}
	if product := toProductDomain(data.Product); product != nil {
		item.ProductName = product.NameTr
		item.ProductImage = product.CoverImage()
	}

	return item
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	if data.ID == uuid.Nil {
		data.ID = uuid.New()
	}

	orderM := &model.OrderModel{
		ID:             data.ID,
		OrderNumber:    data.OrderNumber,
		UserID:         data.UserID,
		TotalAmount:    data.TotalAmount,
		Status:         data.Status.String(),
		PaymentStatus:  data.PaymentStatus.String(),
		PaymentID:      data.PaymentID,
		TrackingNumber: data.TrackingNumber,
		Notes:          data.Notes,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		Items:          make([]model.OrderItemModel, 0, len(data.Items)),
	}
	if data.ShippingAddress != nil {
		orderM.ShippingAddressID = data.ShippingAddress.ID
	}

	for i, item := range data.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = data.ID
		orderM.Items = append(orderM.Items, model.OrderItemModel{
			ID:        item.ID,
			OrderID:   data.ID,
			ProductID: item.ProductID,
			Position:  i,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal,
		})
	}

	return orderM
}
