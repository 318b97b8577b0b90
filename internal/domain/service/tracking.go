package service

import (
	"context"

	"github.com/google/uuid"
)

// TrackingTokenGenerator renders an opaque payload into a scannable image.
type TrackingTokenGenerator interface {
	// Generate returns PNG bytes of the given dimensions encoding payload.
	Generate(ctx context.Context, payload string, width, height int) ([]byte, error)
}

// TrackingArtifactStore persists a rendered tracking artifact and returns a URL clients can load.
type TrackingArtifactStore interface {
	// Store saves the PNG for the order and returns its reference URL.
	Store(ctx context.Context, orderID uuid.UUID, png []byte) (string, error)
}
