package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	addressRepo  repository.AddressRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	authorizer   usecase.Authorizer
	tracking     usecase.TrackingUsecase
	publisher    service.EventPublisher
	metrics      service.Metrics
	enforceStock bool
	maxItems     int
	logger       *slog.Logger
	now          func() time.Time
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	AddressRepo repository.AddressRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Authorizer  usecase.Authorizer
	Tracking    usecase.TrackingUsecase
	Publisher   service.EventPublisher
	Metrics     service.Metrics
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		addressRepo:  params.AddressRepo,
		productRepo:  params.ProductRepo,
		orderRepo:    params.OrderRepo,
		authorizer:   params.Authorizer,
		tracking:     params.Tracking,
		publisher:    params.Publisher,
		metrics:      params.Metrics,
		enforceStock: params.Config.Order.EnforceStock,
		maxItems:     params.Config.Order.MaxItems,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder prices the requested items from the catalog and persists the
// order in one transaction. Tracking is attached in the background; its
// failure never fails placement.
func (srv *orderService) CreateOrder(ctx context.Context, principal *entity.Principal, input usecase.CreateOrderInput) (order *entity.Order, err error) {
	ctx, span := startSpan(ctx, "order.Create", attribute.Int("order.items", len(input.Items)))
	defer func() { endSpan(span, err) }()

	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionCreateOrder); err != nil {
		return nil, err
	}
	if err := srv.validateItems(input.Items); err != nil {
		return nil, err
	}

	customer, err := srv.userRepo.FindByID(ctx, principal.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find customer")
	}

	items, err := srv.snapshotItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	shippingID, err := srv.resolveShipping(ctx, customer.ID, input.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	order = &entity.Order{
		ID:                uuid.New(),
		CustomerID:        customer.ID,
		CustomerEmail:     customer.Email,
		TenantID:          customer.TenantID,
		ShippingAddressID: shippingID,
		Items:             items,
		TotalAmount:       entity.SumItems(items),
		Status:            entity.OrderStatusPending,
	}

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if srv.enforceStock {
			products := repos.NewProductRepository()
			for _, item := range order.Items {
				if err := products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return stockError(err, item.ProductID)
				}
			}
		}

		return repos.NewOrderRepository().Create(ctx, order)
	})
	if err != nil {
		return nil, passAppError(err, "failed to create order")
	}

	srv.metrics.OrderCreated()
	srv.log(ctx).Info("Order created",
		slog.String("orderID", order.ID.String()),
		slog.String("customerID", order.CustomerID.String()),
		slog.String("total", order.TotalAmount.StringFixed(entity.MoneyScale)),
	)

	srv.tracking.AttachAsync(ctx, order.ID)

	return order, nil
}

func (srv *orderService) validateItems(items []usecase.OrderItemInput) error {
	if len(items) == 0 {
		return domainerrors.ErrInvalidOrder.WithDetails("order has no items")
	}
	if len(items) > srv.maxItems {
		return domainerrors.ErrInvalidOrder.WithDetails(fmt.Sprintf("order has more than %d items", srv.maxItems))
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			return domainerrors.ErrInvalidOrder.WithDetails(fmt.Sprintf("item %d has no product", i))
		}
		if item.Quantity <= 0 {
			return domainerrors.ErrInvalidOrder.WithDetails(fmt.Sprintf("item %d has quantity %d", i, item.Quantity))
		}
	}

	return nil
}

// snapshotItems copies the current product name and price into each item.
func (srv *orderService) snapshotItems(ctx context.Context, inputs []usecase.OrderItemInput) ([]entity.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}

	found, err := srv.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load products")
	}
	products := make(map[uuid.UUID]*entity.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}

	requested := make(map[uuid.UUID]int, len(inputs))
	items := make([]entity.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		product, ok := products[in.ProductID]
		if !ok || !product.Active {
			return nil, domainerrors.ErrProductUnavailable.WithDetails(in.ProductID.String())
		}
		if !product.OffersSize(in.Size) {
			return nil, domainerrors.ErrInvalidOrder.WithDetails(fmt.Sprintf("item %d: size %q is not offered", i, in.Size))
		}
		if !product.OffersColor(in.Color) {
			return nil, domainerrors.ErrInvalidOrder.WithDetails(fmt.Sprintf("item %d: color %q is not offered", i, in.Color))
		}

		requested[product.ID] += in.Quantity
		if srv.enforceStock && requested[product.ID] > product.StockQuantity {
			return nil, domainerrors.ErrProductUnavailable.WithDetails(product.ID.String() + ": insufficient stock")
		}

		items = append(items, entity.OrderItem{
			ID:             uuid.New(),
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       in.Quantity,
			UnitPrice:      product.BasePrice,
			Size:           strings.TrimSpace(in.Size),
			Color:          strings.TrimSpace(in.Color),
			CustomerNotes:  in.CustomerNotes,
			DesignImageRef: in.DesignImageRef,
		})
	}

	return items, nil
}

// resolveShipping validates an explicit address or falls back to the default one.
func (srv *orderService) resolveShipping(ctx context.Context, customerID uuid.UUID, requested *uuid.UUID) (*uuid.UUID, error) {
	if requested == nil {
		address, err := srv.addressRepo.FindDefaultAddressByUser(ctx, customerID)
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find default address")
		}
		id := address.ID

		return &id, nil
	}

	address, err := srv.addressRepo.FindAddressByID(ctx, *requested)
	if errors.Is(err, repository.ErrAddressNotFound) {
		return nil, domainerrors.ErrInvalidAddress.WithDetails("shipping address not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shipping address")
	}
	if !address.Active || address.UserID != customerID {
		return nil, domainerrors.ErrInvalidAddress.WithDetails("shipping address not found")
	}
	id := address.ID

	return &id, nil
}

// UpdateStatus applies a legal transition guarded by the status the order was
// read with, so concurrent staff updates cannot silently overwrite each other.
func (srv *orderService) UpdateStatus(ctx context.Context, principal *entity.Principal, orderID uuid.UUID, status string) (order *entity.Order, err error) {
	ctx, span := startSpan(ctx, "order.UpdateStatus",
		attribute.String("order.id", orderID.String()),
		attribute.String("order.status.to", status),
	)
	defer func() { endSpan(span, err) }()

	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionTransitionOrder); err != nil {
		return nil, err
	}

	next, ok := entity.ParseOrderStatus(status)
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown order status %q", status))
	}

	current, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(current.Status, current.HeldFromStatus(), next) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(fmt.Sprintf("%s to %s", current.Status, next))
	}

	change := repository.StatusChange{
		OrderID: orderID,
		From:    current.Status,
		To:      next,
		At:      srv.now(),
	}
	if next == entity.OrderStatusHold {
		heldFrom := current.Status
		change.HeldFrom = &heldFrom
	}

	err = srv.orderRepo.UpdateStatus(ctx, change)
	switch {
	case errors.Is(err, repository.ErrOrderStatusMismatch):
		return nil, domainerrors.ErrOrderStatusConflict
	case errors.Is(err, repository.ErrOrderNotFound):
		return nil, domainerrors.ErrOrderNotFound
	case err != nil:
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.metrics.OrderTransitioned(current.Status.String(), next.String())
	srv.log(ctx).Info("Order status changed",
		slog.String("orderID", orderID.String()),
		slog.String("from", current.Status.String()),
		slog.String("to", next.String()),
		slog.String("changedBy", principal.UserID.String()),
	)

	srv.publishStatusChanged(ctx, current, next, principal.UserID, change.At)

	return srv.findOrder(ctx, orderID)
}

func (srv *orderService) publishStatusChanged(ctx context.Context, order *entity.Order, to entity.OrderStatus, changedBy uuid.UUID, at time.Time) {
	event := &entity.OrderStatusChanged{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		CustomerEmail: order.CustomerEmail,
		TenantID:      order.TenantID,
		From:          order.Status,
		To:            to,
		ChangedBy:     changedBy,
		ChangedAt:     at,
	}
	if err := srv.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order status event",
			slog.String("orderID", order.ID.String()),
			slog.Any("error", err),
		)
	}
}

func (srv *orderService) GetOrdersForCustomer(ctx context.Context, principal *entity.Principal) ([]*entity.Order, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionViewOwn); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.FindByCustomer(ctx, principal.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer orders")
	}

	return orders, nil
}

func (srv *orderService) GetAllOrders(ctx context.Context, principal *entity.Principal) ([]*entity.Order, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionListAllOrders); err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (srv *orderService) GetOrderByID(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := srv.authorizer.AuthorizeOwned(ctx, principal, usecase.ActionViewOrder, order.CustomerID); err != nil {
		return nil, err
	}

	return order, nil
}

func (srv *orderService) LookupByTrackingPayload(ctx context.Context, principal *entity.Principal, payload string) (*entity.Order, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionLookupTracking); err != nil {
		return nil, err
	}

	orderID, ok := entity.ParseTrackingPayload(payload)
	if !ok {
		return nil, domainerrors.ErrInvalidTrackingPayload
	}

	return srv.findOrder(ctx, orderID)
}

func (srv *orderService) RetryTracking(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := srv.authorizer.AuthorizeOwned(ctx, principal, usecase.ActionRetryTracking, order.CustomerID); err != nil {
		return nil, err
	}
	if order.HasTracking() {
		return order, nil
	}

	if _, err := srv.tracking.Attach(ctx, orderID); err != nil {
		return nil, err
	}

	return srv.findOrder(ctx, orderID)
}

func (srv *orderService) findOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

func stockError(err error, productID uuid.UUID) error {
	if errors.Is(err, repository.ErrInsufficientStock) {
		return domainerrors.ErrProductUnavailable.WithDetails(productID.String() + ": insufficient stock")
	}
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductUnavailable.WithDetails(productID.String())
	}

	return err
}

// passAppError returns application errors unchanged and wraps anything else.
func passAppError(err error, msg string) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return errors.Wrap(err, msg)
}
