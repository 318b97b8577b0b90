package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its items. The session skips gorm's implicit
// transaction, so callers run it inside TransactionManager.Execute.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidOrder.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range order.Items {
		order.Items[i].ID = orderM.Items[i].ID
	}

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.withItems(ctx).Where("id = ?", id).First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	err := repo.withItems(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by customer")
	}

	return toOrdersDomain(orderModels), nil
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	if err := repo.withItems(ctx).Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrdersDomain(orderModels), nil
}

// UpdateStatus is a compare-and-set on the status column.
func (repo *orderRepository) UpdateStatus(ctx context.Context, change repository.StatusChange) error {
	var heldFrom *string
	if change.HeldFrom != nil {
		s := change.HeldFrom.String()
		heldFrom = &s
	}

	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", change.OrderID, change.From.String()).
		Updates(map[string]any{
			"status":     change.To.String(),
			"held_from":  heldFrom,
			"updated_at": change.At,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&model.OrderModel{}).
		Where("id = ?", change.OrderID).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "failed to check order existence")
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return repository.ErrOrderStatusMismatch
}

// AttachTrackingURL only writes tracking_token_url so it never races with status changes.
func (repo *orderRepository) AttachTrackingURL(ctx context.Context, id uuid.UUID, url string) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ?", id).
		UpdateColumn("tracking_token_url", url)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to attach tracking url")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (repo *orderRepository) FindMissingTracking(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("tracking_token_url IS NULL AND created_at < ?", createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&orderModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders missing tracking")
	}

	return toOrdersDomain(orderModels), nil
}

func (repo *orderRepository) withItems(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// --- Mapper Functions ---

func toOrdersDomain(models []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(models))
	for _, m := range models {
		orders = append(orders, toOrderDomain(m))
	}

	return orders
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	order := &entity.Order{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		CustomerEmail:     data.CustomerEmail,
		TenantID:          data.TenantID,
		ShippingAddressID: data.ShippingAddressID,
		Items:             make([]entity.OrderItem, 0, len(data.Items)),
		TotalAmount:       data.TotalAmount,
		Status:            entity.OrderStatus(data.Status),
		TrackingTokenURL:  data.TrackingTokenURL,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
	if data.HeldFrom != nil {
		heldFrom := entity.OrderStatus(*data.HeldFrom)
		order.HeldFrom = &heldFrom
	}
	for _, item := range data.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Size:           item.Size,
			Color:          item.Color,
			CustomerNotes:  item.CustomerNotes,
			DesignImageRef: item.DesignImageRef,
		})
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	orderM := &model.OrderModel{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		CustomerEmail:     data.CustomerEmail,
		TenantID:          data.TenantID,
		ShippingAddressID: data.ShippingAddressID,
		TotalAmount:       data.TotalAmount,
		Status:            data.Status.String(),
		TrackingTokenURL:  data.TrackingTokenURL,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
		Items:             make([]model.OrderItemModel, 0, len(data.Items)),
	}
	if data.HeldFrom != nil {
		heldFrom := data.HeldFrom.String()
		orderM.HeldFrom = &heldFrom
	}
	for i, item := range data.Items {
		id := item.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		orderM.Items = append(orderM.Items, model.OrderItemModel{
			ID:             id,
			OrderID:        data.ID,
			Position:       i,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Size:           item.Size,
			Color:          item.Color,
			CustomerNotes:  item.CustomerNotes,
			DesignImageRef: item.DesignImageRef,
		})
	}

	return orderM
}
