package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrDesignAssetNotFound is returned when a design asset is not found.
	ErrDesignAssetNotFound = errors.New("design asset not found")
	// ErrDesignAssetTypeTaken is returned when another asset already uses the type key.
	ErrDesignAssetTypeTaken = errors.New("design asset type already taken")
)

// DesignAssetRepository defines design studio asset persistence.
type DesignAssetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DesignAsset, error)

	// List returns every asset ordered by name.
	List(ctx context.Context) ([]*entity.DesignAsset, error)

	// Count returns the number of stored assets.
	Count(ctx context.Context) (int64, error)

	// Create persists a new asset. Returns ErrDesignAssetTypeTaken on a duplicate type.
	Create(ctx context.Context, asset *entity.DesignAsset) error

	// Update writes the mutable fields; the type key is never changed.
	Update(ctx context.Context, asset *entity.DesignAsset) error

	// Delete removes the asset.
	Delete(ctx context.Context, id uuid.UUID) error
}
