// Package payment adapts external payment providers to the PaymentGateway port.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ProviderStripe selects the Stripe gateway.
const ProviderStripe = "stripe"

// ErrNotConfigured is returned by the disabled gateway.
var ErrNotConfigured = errors.New("payment provider is not configured")

// NewPaymentGateway builds the gateway selected by payment.provider.
func NewPaymentGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	switch strings.ToLower(cfg.Payment.Provider) {
	case "":
		logger.Warn("Payment provider not configured, payment intents are disabled")

		return disabledGateway{}, nil
	case ProviderStripe:
		return NewStripeGateway(cfg.Payment, logger)
	default:
		return nil, errors.Errorf("unsupported payment provider %q", cfg.Payment.Provider)
	}
}

type disabledGateway struct{}

func (disabledGateway) CreatePaymentIntent(context.Context, service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	return nil, ErrNotConfigured
}

type stripeGateway struct {
	api    *client.API
	logger *slog.Logger
}

// NewStripeGateway creates a Stripe PaymentIntents client with the configured timeout and retries.
func NewStripeGateway(cfg *config.PaymentConfig, logger *slog.Logger) (service.PaymentGateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}

	backendConfig := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     &slogLeveledLogger{logger: logger.With(slog.String("component", "stripe"))},
	}
	if cfg.APIURL != "" {
		backendConfig.URL = stripe.String(cfg.APIURL)
	}

	backends := &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
	}

	return &stripeGateway{
		api:    client.New(cfg.SecretKey, backends),
		logger: logger,
	}, nil
}

// CreatePaymentIntent creates an intent with automatic payment methods enabled.
func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinorUnits),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.Wrap(service.ErrGatewayTimeout, err.Error())
		}

		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, errors.Errorf("stripe rejected payment intent: status=%d code=%s type=%s: %s",
				stripeErr.HTTPStatusCode, stripeErr.Code, stripeErr.Type, stripeErr.Msg)
		}

		return nil, errors.Wrap(err, "stripe payment intent request failed")
	}

	return &service.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// slogLeveledLogger routes stripe-go diagnostics into slog.
type slogLeveledLogger struct {
	logger *slog.Logger
}

func (l *slogLeveledLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l *slogLeveledLogger) Infof(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l *slogLeveledLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l *slogLeveledLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
