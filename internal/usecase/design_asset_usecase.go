package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DesignAssetInput carries every editable design asset field.
type DesignAssetInput struct {
	Name           string
	Type           string // Derived from Name when empty; ignored on update.
	MockupImageURL string
	BasePrice      decimal.Decimal
	PrintArea      entity.PrintArea
}

// DesignAssetUsecase serves the design studio garments: public reads and
// ADMIN-only mutations.
type DesignAssetUsecase interface {
	ListDesignAssets(ctx context.Context) ([]*entity.DesignAsset, error)
	GetDesignAsset(ctx context.Context, id uuid.UUID) (*entity.DesignAsset, error)
	CreateDesignAsset(ctx context.Context, principal *entity.Principal, input DesignAssetInput) (*entity.DesignAsset, error)
	UpdateDesignAsset(ctx context.Context, principal *entity.Principal, id uuid.UUID, input DesignAssetInput) (*entity.DesignAsset, error)
	DeleteDesignAsset(ctx context.Context, principal *entity.Principal, id uuid.UUID) error

	// SeedDefaults stores the default garments when no asset exists yet and
	// returns how many were added.
	SeedDefaults(ctx context.Context) (int, error)
}
