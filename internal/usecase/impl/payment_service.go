package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
)

const (
	paymentResultCreated  = "created"
	paymentResultTimeout  = "timeout"
	paymentResultFailed   = "failed"
	paymentResultRejected = "rejected"
)

// paymentService creates payment intents for the stored order total. The
// charged amount is never taken from the caller.
type paymentService struct {
	orderRepo  repository.OrderRepository
	gateway    service.PaymentGateway
	authorizer usecase.Authorizer
	metrics    service.Metrics
	currency   string
	timeout    time.Duration
	logger     *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	OrderRepo  repository.OrderRepository
	Gateway    service.PaymentGateway
	Authorizer usecase.Authorizer
	Metrics    service.Metrics
	Config     *config.Config
	Logger     *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		orderRepo:  params.OrderRepo,
		gateway:    params.Gateway,
		authorizer: params.Authorizer,
		metrics:    params.Metrics,
		currency:   params.Config.Payment.Currency,
		timeout:    params.Config.Payment.Timeout,
		logger:     params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *paymentService) CreatePaymentIntent(ctx context.Context, principal *entity.Principal, input usecase.CreatePaymentIntentInput) (out *usecase.PaymentIntentOutput, err error) {
	ctx, span := startSpan(ctx, "payment.CreateIntent", attribute.String("order.id", input.OrderID.String()))
	defer func() { endSpan(span, err) }()

	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	order, err := srv.orderRepo.FindByID(ctx, input.OrderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}
	if err := srv.authorizer.AuthorizeOwned(ctx, principal, usecase.ActionRequestPayment, order.CustomerID); err != nil {
		return nil, err
	}

	if order.Status != entity.OrderStatusPending {
		srv.metrics.PaymentIntent(paymentResultRejected)

		return nil, domainerrors.ErrInvalidOrder.WithDetails("order is " + order.Status.String() + ", only PENDING orders are payable")
	}

	amount := entity.MinorUnits(order.TotalAmount)
	if input.Amount != nil && *input.Amount != amount {
		srv.metrics.PaymentIntent(paymentResultRejected)
		srv.log(ctx).Warn("Payment amount mismatch",
			slog.String("orderID", order.ID.String()),
			slog.Int64("requested", *input.Amount),
			slog.Int64("expected", amount),
		)

		return nil, domainerrors.ErrInvalidOrder.WithDetails("amount does not match order total")
	}

	callCtx, cancel := context.WithTimeout(ctx, srv.timeout)
	defer cancel()

	started := time.Now()
	intent, err := srv.gateway.CreatePaymentIntent(callCtx, service.PaymentIntentRequest{
		AmountMinorUnits: amount,
		Currency:         srv.currency,
		IdempotencyKey:   paymentIdempotencyKey(order, amount),
		Metadata: map[string]string{
			"orderId":    order.ID.String(),
			"customerId": order.CustomerID.String(),
		},
	})
	srv.metrics.ObserveExternalCall("payment_gateway", time.Since(started))
	if err != nil {
		srv.log(ctx).Error("Payment intent creation failed",
			slog.String("orderID", order.ID.String()),
			slog.Any("error", err),
		)
		if errors.Is(err, service.ErrGatewayTimeout) || errors.Is(err, context.DeadlineExceeded) {
			srv.metrics.PaymentIntent(paymentResultTimeout)

			return nil, errors.Wrap(domainerrors.ErrExternalServiceTimeout.WithDetails("payment gateway"), err.Error())
		}
		srv.metrics.PaymentIntent(paymentResultFailed)

		return nil, errors.Wrap(domainerrors.ErrExternalServiceFailure.WithDetails("payment gateway"), err.Error())
	}

	srv.metrics.PaymentIntent(paymentResultCreated)
	srv.log(ctx).Info("Payment intent created",
		slog.String("orderID", order.ID.String()),
		slog.String("intentID", intent.ID),
	)

	return &usecase.PaymentIntentOutput{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     srv.currency,
	}, nil
}

// paymentIdempotencyKey makes repeated requests for the same order total
// resolve to the same provider intent.
func paymentIdempotencyKey(order *entity.Order, amount int64) string {
	return fmt.Sprintf("order-%s-%d", order.ID, amount)
}
