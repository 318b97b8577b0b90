package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePaymentIntentInput references the order to pay. Amount is optional and,
// when given in minor units, must match the stored order total.
type CreatePaymentIntentInput struct {
	OrderID uuid.UUID
	Amount  *int64
}

// PaymentIntentOutput is returned to the client to complete payment.
type PaymentIntentOutput struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// PaymentUsecase creates provider payment intents for stored orders.
type PaymentUsecase interface {
	CreatePaymentIntent(ctx context.Context, principal *entity.Principal, input CreatePaymentIntentInput) (*PaymentIntentOutput, error)
}
