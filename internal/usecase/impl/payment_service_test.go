package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_DerivesAmountFromOrder(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	customer := f.seedUser(t, entity.RoleCustomer)
	order := placeOrder(t, f, customer)

	f.gateway.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(req service.PaymentIntentRequest) bool {
		return req.AmountMinorUnits == 13000 &&
			req.Currency == "inr" &&
			req.IdempotencyKey == "order-"+order.ID.String()+"-13000" &&
			req.Metadata["orderId"] == order.ID.String()
	})).Return(&service.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil).Once()

	out, err := f.payments.CreatePaymentIntent(context.Background(), customer, usecase.CreatePaymentIntentInput{OrderID: order.ID})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", out.ID)
	assert.Equal(t, "pi_123_secret", out.ClientSecret)
	assert.Equal(t, int64(13000), out.Amount)
	f.gateway.AssertExpectations(t)
}

func TestPaymentService_Rejections(t *testing.T) {
	f := newServiceFixtures(t)
	f.expectTracking()
	f.publisher.On("PublishOrderStatusChanged", mock.Anything, mock.Anything).Return(nil)
	customer := f.seedUser(t, entity.RoleCustomer)
	stranger := f.seedUser(t, entity.RoleCustomer)
	admin := f.seedUser(t, entity.RoleAdmin)
	ctx := context.Background()
	order := placeOrder(t, f, customer)

	wrong := int64(100)
	_, err := f.payments.CreatePaymentIntent(ctx, customer, usecase.CreatePaymentIntentInput{OrderID: order.ID, Amount: &wrong})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrder)

	_, err = f.payments.CreatePaymentIntent(ctx, stranger, usecase.CreatePaymentIntentInput{OrderID: order.ID})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = f.orders.UpdateStatus(ctx, admin, order.ID, "CANCELLED")
	require.NoError(t, err)
	_, err = f.payments.CreatePaymentIntent(ctx, customer, usecase.CreatePaymentIntentInput{OrderID: order.ID})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrder)

	f.gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
}

func TestPaymentService_GatewayFailures(t *testing.T) {
	tests := []struct {
		name       string
		gatewayErr error
		wantErr    error
		retryable  bool
	}{
		{"timeout", errors.Wrap(service.ErrGatewayTimeout, "deadline"), domainerrors.ErrExternalServiceTimeout, true},
		{"declined", errors.New("card declined"), domainerrors.ErrExternalServiceFailure, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixtures(t)
			f.expectTracking()
			customer := f.seedUser(t, entity.RoleCustomer)
			order := placeOrder(t, f, customer)

			f.gateway.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(nil, tt.gatewayErr).Once()

			amount := entity.MinorUnits(order.TotalAmount)
			_, err := f.payments.CreatePaymentIntent(context.Background(), customer,
				usecase.CreatePaymentIntentInput{OrderID: order.ID, Amount: &amount})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.retryable, domainerrors.IsRetryable(err))

			stored, err := f.orders.GetOrderByID(context.Background(), customer, order.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.OrderStatusPending, stored.Status)
		})
	}
}
