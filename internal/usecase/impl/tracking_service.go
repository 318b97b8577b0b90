package impl

import (
	"context"
	"log/slog"
	"sync"
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

const (
	trackingResultAttached = "attached"
	trackingResultFailed   = "failed"
)

// trackingService renders the order's tracking code, stores it and records
// the resulting URL on the order. Every attempt is bounded by a timeout.
type trackingService struct {
	orderRepo repository.OrderRepository
	generator service.TrackingTokenGenerator
	store     service.TrackingArtifactStore
	metrics   service.Metrics
	cfg       config.TrackingConfig
	logger    *slog.Logger
	now       func() time.Time

	inflight sync.WaitGroup
}

// TrackingServiceParams holds dependencies for TrackingService, injected by Fx.
type TrackingServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	Generator service.TrackingTokenGenerator
	Store     service.TrackingArtifactStore
	Metrics   service.Metrics
	Config    *config.Config
	Logger    *slog.Logger
}

// NewTrackingService is the constructor for trackingService.
func NewTrackingService(params TrackingServiceParams) usecase.TrackingUsecase {
	return &trackingService{
		orderRepo: params.OrderRepo,
		generator: params.Generator,
		store:     params.Store,
		metrics:   params.Metrics,
		cfg:       *params.Config.Tracking,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *trackingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *trackingService) Attach(ctx context.Context, orderID uuid.UUID) (url string, err error) {
	ctx, span := startSpan(ctx, "tracking.Attach", attribute.String("order.id", orderID.String()))
	defer func() { endSpan(span, err) }()

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return "", domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to find order")
	}
	if order.HasTracking() {
		return *order.TrackingTokenURL, nil
	}

	payload := entity.TrackingPayload(orderID)
	backoff := srv.cfg.InitialBackoff

	var lastErr error
	for attempt := 1; attempt <= srv.cfg.MaxAttempts; attempt++ {
		url, lastErr = srv.render(ctx, orderID, payload)
		if lastErr == nil {
			break
		}

		srv.log(ctx).Warn("Tracking attempt failed",
			slog.String("orderID", orderID.String()),
			slog.Int("attempt", attempt),
			slog.Any("error", lastErr),
		)

		if attempt == srv.cfg.MaxAttempts {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			lastErr = err

			break
		}
		backoff *= 2
	}
	if lastErr != nil {
		srv.metrics.TrackingAttach(trackingResultFailed)

		return "", externalError(lastErr, "tracking artifact")
	}

	if err := srv.orderRepo.AttachTrackingURL(ctx, orderID, url); err != nil {
		srv.metrics.TrackingAttach(trackingResultFailed)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return "", domainerrors.ErrOrderNotFound
		}

		return "", errors.Wrap(err, "failed to attach tracking url")
	}

	srv.metrics.TrackingAttach(trackingResultAttached)
	srv.log(ctx).Info("Tracking attached", slog.String("orderID", orderID.String()))

	return url, nil
}

// render performs one generate-and-store attempt under the configured timeout.
func (srv *trackingService) render(ctx context.Context, orderID uuid.UUID, payload string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, srv.cfg.Timeout)
	defer cancel()

	started := time.Now()
	png, err := srv.generator.Generate(attemptCtx, payload, srv.cfg.Width, srv.cfg.Height)
	srv.metrics.ObserveExternalCall("tracking_generator", time.Since(started))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate tracking code")
	}

	started = time.Now()
	url, err := srv.store.Store(attemptCtx, orderID, png)
	srv.metrics.ObserveExternalCall("tracking_store", time.Since(started))
	if err != nil {
		return "", errors.Wrap(err, "failed to store tracking code")
	}

	return url, nil
}

// AttachAsync detaches from the caller's cancellation so the attachment
// outlives the request that placed the order.
func (srv *trackingService) AttachAsync(ctx context.Context, orderID uuid.UUID) {
	bg := context.WithoutCancel(ctx)

	srv.inflight.Go(func() {
		if _, err := srv.Attach(bg, orderID); err != nil {
			srv.log(bg).Warn("Tracking left for the sweeper",
				slog.String("orderID", orderID.String()),
				slog.Any("error", err),
			)
		}
	})
}

func (srv *trackingService) SweepMissing(ctx context.Context) (int, error) {
	cutoff := srv.now().Add(-srv.cfg.SweepInterval)

	orders, err := srv.orderRepo.FindMissingTracking(ctx, cutoff, srv.cfg.SweepBatchSize)
	if err != nil {
		return 0, errors.Wrap(err, "failed to find orders missing tracking")
	}

	attached := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			return attached, ctx.Err()
		}
		if _, err := srv.Attach(ctx, order.ID); err != nil {
			srv.log(ctx).Warn("Sweep could not attach tracking",
				slog.String("orderID", order.ID.String()),
				slog.Any("error", err),
			)

			continue
		}
		attached++
	}

	if len(orders) > 0 {
		srv.log(ctx).Info("Tracking sweep finished",
			slog.Int("candidates", len(orders)),
			slog.Int("attached", attached),
		)
	}

	return attached, nil
}

func (srv *trackingService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		srv.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// externalError maps a collaborator failure to the timeout or failure error.
func externalError(err error, collaborator string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(domainerrors.ErrExternalServiceTimeout.WithDetails(collaborator), err.Error())
	}

	return errors.Wrap(domainerrors.ErrExternalServiceFailure.WithDetails(collaborator), err.Error())
}
