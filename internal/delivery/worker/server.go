// Package worker runs background loops that repair state the request path leaves behind.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// trackingSweeper periodically attaches tracking artifacts that the
// asynchronous attachment after order placement did not manage to write.
type trackingSweeper struct {
	tracking usecase.TrackingUsecase
	interval time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// SweeperParams holds dependencies for the tracking sweeper.
type SweeperParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Logger   *slog.Logger
	Tracking usecase.TrackingUsecase
}

// NewTrackingSweeper creates the sweeper. On stop it also drains in-flight
// background attachments.
func NewTrackingSweeper(params SweeperParams) (delivery.Delivery, error) {
	s := &trackingSweeper{
		tracking: params.Tracking,
		interval: params.Cfg.Tracking.SweepInterval,
		logger:   params.Logger.With(slog.String("component", "tracking-sweeper")),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// Serve sweeps every interval until the application stops.
func (s *trackingSweeper) Serve(ctx context.Context) error {
	defer close(s.doneCh)

	s.logger.Info("Starting tracking sweeper", slog.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *trackingSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	// Stop aborts a sweep in progress.
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-sweepCtx.Done():
		}
	}()

	if _, err := s.tracking.SweepMissing(sweepCtx); err != nil {
		s.logger.Warn("Tracking sweep failed", slog.Any("error", err))
	}
}

func (s *trackingSweeper) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down tracking sweeper")
	s.stopOnce.Do(func() { close(s.stopCh) })

	select {
	case <-s.doneCh:
	case <-shutdownCtx.Done():
	}

	return s.tracking.Wait(shutdownCtx)
}
