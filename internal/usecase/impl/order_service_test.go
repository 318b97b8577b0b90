package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, f *serviceFixtures, customer *entity.Principal) *entity.Order {
	t.Helper()

	p1 := f.seedProduct(t, "Tee", "50.00", 10)
	p2 := f.seedProduct(t, "Cap", "30.00", 10)

	order, err := f.orders.CreateOrder(context.Background(), customer, usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: p1.ID, Quantity: 2, Size: "M", Color: "black"},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	return order
}

func TestOrderService_CreateOrder_TotalsAndStatus(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)

	order := placeOrder(t, f, customer)

	assert.True(t, decimal.RequireFromString("130.00").Equal(order.TotalAmount))
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, customer.UserID, order.CustomerID)
	assert.Equal(t, customer.Email, order.CustomerEmail)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Tee", order.Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("50.00").Equal(order.Items[0].UnitPrice))

	f.waitTracking(t)

	stored, err := f.orders.GetOrderByID(context.Background(), customer, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TrackingTokenURL)
	assert.Equal(t, "data:image/png;base64,cG5n", *stored.TrackingTokenURL)
	assert.True(t, order.TotalAmount.Equal(stored.TotalAmount))
}

func TestOrderService_CreateOrder_DecrementsStock(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)
	product := f.seedProduct(t, "Tee", "10.00", 3)

	_, err := f.orders.CreateOrder(context.Background(), customer, usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	stored, err := f.repos.NewProductRepository().FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.StockQuantity)

	_, err = f.orders.CreateOrder(context.Background(), customer, usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductUnavailable)
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	f := newServiceFixtures(t)
	customer := f.seedUser(t, entity.RoleCustomer)
	worker := f.seedUser(t, entity.RoleWorker)
	product := f.seedProduct(t, "Tee", "10.00", 5)
	inactive := f.seedProduct(t, "Old", "10.00", 5)
	inactive.Active = false
	require.NoError(t, f.repos.NewProductRepository().Update(context.Background(), inactive))

	tests := []struct {
		name      string
		principal *entity.Principal
		items     []usecase.OrderItemInput
		wantErr   error
	}{
		{
			name:      "anonymous caller",
			principal: nil,
			items:     []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			wantErr:   domainerrors.ErrUnauthenticated,
		},
		{
			name:      "worker cannot place orders",
			principal: worker,
			items:     []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			wantErr:   domainerrors.ErrForbidden,
		},
		{
			name:      "no items",
			principal: customer,
			wantErr:   domainerrors.ErrInvalidOrder,
		},
		{
			name:      "zero quantity",
			principal: customer,
			items:     []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 0}},
			wantErr:   domainerrors.ErrInvalidOrder,
		},
		{
			name:      "size not offered",
			principal: customer,
			items:     []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1, Size: "XXL"}},
			wantErr:   domainerrors.ErrInvalidOrder,
		},
		{
			name:      "inactive product",
			principal: customer,
			items:     []usecase.OrderItemInput{{ProductID: inactive.ID, Quantity: 1}},
			wantErr:   domainerrors.ErrProductUnavailable,
		},
		{
			name:      "unknown product",
			principal: customer,
			items:     []usecase.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
			wantErr:   domainerrors.ErrProductUnavailable,
		},
		{
			name:      "quantity above stock",
			principal: customer,
			items:     []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 6}},
			wantErr:   domainerrors.ErrProductUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.CreateOrder(context.Background(), tt.principal, usecase.CreateOrderInput{Items: tt.items})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	orders, err := f.repos.NewOrderRepository().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrder_ShippingAddress(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)
	other := f.seedUser(t, entity.RoleCustomer)
	product := f.seedProduct(t, "Tee", "10.00", 10)
	ctx := context.Background()

	home, err := f.addresses.AddAddress(ctx, customer, validAddressInput(true))
	require.NoError(t, err)
	foreign, err := f.addresses.AddAddress(ctx, other, validAddressInput(false))
	require.NoError(t, err)

	items := []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}}

	order, err := f.orders.CreateOrder(ctx, customer, usecase.CreateOrderInput{Items: items})
	require.NoError(t, err)
	require.NotNil(t, order.ShippingAddressID)
	assert.Equal(t, home.ID, *order.ShippingAddressID)

	_, err = f.orders.CreateOrder(ctx, customer, usecase.CreateOrderInput{Items: items, ShippingAddressID: &foreign.ID})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAddress)
}

func TestOrderService_UpdateStatus_AdminMarksPaid(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)
	admin := f.seedUser(t, entity.RoleAdmin)
	order := placeOrder(t, f, customer)

	f.publisher.On("PublishOrderStatusChanged", mock.Anything, mock.MatchedBy(func(e *entity.OrderStatusChanged) bool {
		return e.OrderID == order.ID && e.From == entity.OrderStatusPending && e.To == entity.OrderStatusPaid && e.ChangedBy == admin.UserID
	})).Return(nil).Once()

	updated, err := f.orders.UpdateStatus(context.Background(), admin, order.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, updated.Status)

	reread, err := f.orders.GetOrderByID(context.Background(), admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, reread.Status)
	assert.True(t, order.TotalAmount.Equal(reread.TotalAmount))
	f.publisher.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_PublishFailureDoesNotFail(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)
	worker := f.seedUser(t, entity.RoleWorker)
	order := placeOrder(t, f, customer)

	f.publisher.On("PublishOrderStatusChanged", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	updated, err := f.orders.UpdateStatus(context.Background(), worker, order.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, updated.Status)
}

func TestOrderService_UpdateStatus_Rejections(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	f.publisher.On("PublishOrderStatusChanged", mock.Anything, mock.Anything).Return(nil)
	customer := f.seedUser(t, entity.RoleCustomer)
	admin := f.seedUser(t, entity.RoleAdmin)
	ctx := context.Background()
	order := placeOrder(t, f, customer)

	_, err := f.orders.UpdateStatus(ctx, customer, order.ID, "PAID")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = f.orders.UpdateStatus(ctx, admin, order.ID, "SHIPPED")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = f.orders.UpdateStatus(ctx, admin, order.ID, "PENDING")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	_, err = f.orders.UpdateStatus(ctx, admin, order.ID, "REFUNDED")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.orders.UpdateStatus(ctx, admin, uuid.New(), "PAID")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	for _, next := range []string{"PAID", "IN_PRODUCTION", "QUALITY_CHECK", "SHIPPED", "DELIVERED"} {
		_, err = f.orders.UpdateStatus(ctx, admin, order.ID, next)
		require.NoError(t, err, next)
	}

	_, err = f.orders.UpdateStatus(ctx, admin, order.ID, "PENDING")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	stored, err := f.orders.GetOrderByID(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, stored.Status)
}

func TestOrderService_UpdateStatus_HoldResumesToHeldFrom(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	f.publisher.On("PublishOrderStatusChanged", mock.Anything, mock.Anything).Return(nil)
	customer := f.seedUser(t, entity.RoleCustomer)
	worker := f.seedUser(t, entity.RoleWorker)
	ctx := context.Background()
	order := placeOrder(t, f, customer)

	_, err := f.orders.UpdateStatus(ctx, worker, order.ID, "PAID")
	require.NoError(t, err)

	held, err := f.orders.UpdateStatus(ctx, worker, order.ID, "HOLD")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusHold, held.Status)
	assert.Equal(t, entity.OrderStatusPaid, held.HeldFromStatus())

	_, err = f.orders.UpdateStatus(ctx, worker, order.ID, "IN_PRODUCTION")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	resumed, err := f.orders.UpdateStatus(ctx, worker, order.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, resumed.Status)
	assert.Nil(t, resumed.HeldFrom)
}

func TestOrderService_Reads(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)
	stranger := f.seedUser(t, entity.RoleCustomer)
	worker := f.seedUser(t, entity.RoleWorker)
	admin := f.seedUser(t, entity.RoleAdmin)
	ctx := context.Background()
	order := placeOrder(t, f, customer)

	mine, err := f.orders.GetOrdersForCustomer(ctx, customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)

	theirs, err := f.orders.GetOrdersForCustomer(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.orders.GetOrderByID(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = f.orders.GetOrderByID(ctx, worker, order.ID)
	assert.NoError(t, err)

	_, err = f.orders.GetAllOrders(ctx, worker)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	all, err := f.orders.GetAllOrders(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.orders.GetOrderByID(ctx, admin, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_LookupByTrackingPayload(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)
	worker := f.seedUser(t, entity.RoleWorker)
	ctx := context.Background()
	order := placeOrder(t, f, customer)

	found, err := f.orders.LookupByTrackingPayload(ctx, worker, entity.TrackingPayload(order.ID))
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = f.orders.LookupByTrackingPayload(ctx, worker, "PRODUCT:"+order.ID.String())
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTrackingPayload)

	_, err = f.orders.LookupByTrackingPayload(ctx, customer, entity.TrackingPayload(order.ID))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_TrackingFailureThenRetry(t *testing.T) {
	f := newServiceFixtures(t)
	customer := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	f.generator.On("Generate", mock.Anything, mock.Anything, 200, 200).
		Return(nil, errors.New("renderer crashed")).Times(f.cfg.Tracking.MaxAttempts)

	order := placeOrder(t, f, customer)
	f.waitTracking(t)

	stored, err := f.orders.GetOrderByID(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TrackingTokenURL)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)

	f.expectTracking()

	retried, err := f.orders.RetryTracking(ctx, customer, order.ID)
	require.NoError(t, err)
	require.NotNil(t, retried.TrackingTokenURL)
	assert.True(t, order.TotalAmount.Equal(retried.TotalAmount))
	assert.Equal(t, entity.OrderStatusPending, retried.Status)
	f.generator.AssertNumberOfCalls(t, "Generate", f.cfg.Tracking.MaxAttempts+1)

	// A second retry is a no-op.
	again, err := f.orders.RetryTracking(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, *retried.TrackingTokenURL, *again.TrackingTokenURL)
	f.generator.AssertNumberOfCalls(t, "Generate", f.cfg.Tracking.MaxAttempts+1)
}
