package service

import (
	"context"

	"storefront/internal/errors"
)

// ErrGatewayTimeout marks a payment provider call that did not finish in time.
var ErrGatewayTimeout = errors.New("payment gateway timeout")

// PaymentIntentRequest asks the provider to authorize a pending charge.
type PaymentIntentRequest struct {
	AmountMinorUnits int64
	Currency         string
	IdempotencyKey   string
	Metadata         map[string]string
}

// PaymentIntent is the provider-side record returned to the client.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway creates payment intents with an external provider.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error)
}
