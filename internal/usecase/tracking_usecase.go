package usecase

import (
	"context"

	"github.com/google/uuid"
)

// TrackingUsecase renders and attaches order tracking artifacts. Failures never
// touch the order beyond its tracking reference.
type TrackingUsecase interface {
	// Attach generates, stores and attaches the artifact with bounded retries.
	// It is a no-op returning the existing URL when one is attached.
	Attach(ctx context.Context, orderID uuid.UUID) (string, error)

	// AttachAsync runs Attach in the background and only logs failures.
	AttachAsync(ctx context.Context, orderID uuid.UUID)

	// SweepMissing attaches artifacts to orders older than the sweep interval
	// that still have none. It returns how many were attached.
	SweepMissing(ctx context.Context) (int, error)

	// Wait blocks until background attachments finish or ctx is done.
	Wait(ctx context.Context) error
}
