package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// designAssetService implements the DesignAssetUsecase interface.
type designAssetService struct {
	assetRepo  repository.DesignAssetRepository
	authorizer usecase.Authorizer
	logger     *slog.Logger
}

// DesignAssetServiceParams holds dependencies for DesignAssetService, injected by Fx.
type DesignAssetServiceParams struct {
	fx.In

	AssetRepo  repository.DesignAssetRepository
	Authorizer usecase.Authorizer
	Logger     *slog.Logger
}

// NewDesignAssetService is the constructor for designAssetService.
func NewDesignAssetService(params DesignAssetServiceParams) usecase.DesignAssetUsecase {
	return &designAssetService{
		assetRepo:  params.AssetRepo,
		authorizer: params.Authorizer,
		logger:     params.Logger,
	}
}

func (srv *designAssetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *designAssetService) ListDesignAssets(ctx context.Context) ([]*entity.DesignAsset, error) {
	assets, err := srv.assetRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list design assets")
	}

	return assets, nil
}

func (srv *designAssetService) GetDesignAsset(ctx context.Context, id uuid.UUID) (*entity.DesignAsset, error) {
	return srv.findAsset(ctx, id)
}

func (srv *designAssetService) CreateDesignAsset(ctx context.Context, principal *entity.Principal, input usecase.DesignAssetInput) (*entity.DesignAsset, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionMutateCatalog); err != nil {
		return nil, err
	}

	assetType := input.Type
	if strings.TrimSpace(assetType) == "" {
		assetType = input.Name
	}
	asset := &entity.DesignAsset{
		ID:   uuid.New(),
		Type: entity.DesignAssetType(assetType),
	}
	if asset.Type == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("type or name is required")
	}
	if err := applyDesignAssetInput(asset, input); err != nil {
		return nil, err
	}

	if err := srv.assetRepo.Create(ctx, asset); err != nil {
		return nil, translateDesignAssetError(err, "failed to create design asset")
	}

	srv.log(ctx).Info("Design asset created",
		slog.String("designAssetID", asset.ID.String()),
		slog.String("type", asset.Type),
	)

	return asset, nil
}

// UpdateDesignAsset replaces name, mockup, price and print area. The type key stays.
func (srv *designAssetService) UpdateDesignAsset(ctx context.Context, principal *entity.Principal, id uuid.UUID, input usecase.DesignAssetInput) (*entity.DesignAsset, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionMutateCatalog); err != nil {
		return nil, err
	}

	asset, err := srv.findAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDesignAssetInput(asset, input); err != nil {
		return nil, err
	}

	if err := srv.assetRepo.Update(ctx, asset); err != nil {
		return nil, translateDesignAssetError(err, "failed to update design asset")
	}

	return asset, nil
}

func (srv *designAssetService) DeleteDesignAsset(ctx context.Context, principal *entity.Principal, id uuid.UUID) error {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionMutateCatalog); err != nil {
		return err
	}

	if err := srv.assetRepo.Delete(ctx, id); err != nil {
		return translateDesignAssetError(err, "failed to delete design asset")
	}

	srv.log(ctx).Info("Design asset deleted", slog.String("designAssetID", id.String()))

	return nil
}

func (srv *designAssetService) SeedDefaults(ctx context.Context) (int, error) {
	n, err := srv.assetRepo.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count design assets")
	}
	if n > 0 {
		return 0, nil
	}

	seeded := 0
	for _, asset := range entity.DefaultDesignAssets() {
		err := srv.assetRepo.Create(ctx, asset)
		// Another instance seeded the same type first.
		if errors.Is(err, repository.ErrDesignAssetTypeTaken) {
			continue
		}
		if err != nil {
			return seeded, errors.Wrapf(err, "failed to seed design asset %s", asset.Type)
		}
		seeded++
	}

	if seeded > 0 {
		srv.logger.Info("Seeded default design assets", slog.Int("count", seeded))
	}

	return seeded, nil
}

func (srv *designAssetService) findAsset(ctx context.Context, id uuid.UUID) (*entity.DesignAsset, error) {
	asset, err := srv.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDesignAssetError(err, "failed to find design asset")
	}

	return asset, nil
}

func applyDesignAssetInput(asset *entity.DesignAsset, input usecase.DesignAssetInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if input.BasePrice.IsNegative() || !entity.IsMoneyPrecise(input.BasePrice) {
		return domainerrors.ErrValidationFailed.WithDetails("basePrice must be a non-negative amount with at most 2 decimals")
	}
	if !input.PrintArea.Valid() {
		return domainerrors.ErrValidationFailed.WithDetails("print area values must be percentages between 0% and 100%")
	}

	asset.Name = name
	asset.MockupImageURL = strings.TrimSpace(input.MockupImageURL)
	asset.BasePrice = input.BasePrice
	asset.PrintArea = input.PrintArea

	return nil
}

func translateDesignAssetError(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrDesignAssetNotFound):
		return domainerrors.ErrDesignAssetNotFound
	case errors.Is(err, repository.ErrDesignAssetTypeTaken):
		return domainerrors.ErrDesignAssetTypeTaken
	default:
		return errors.Wrap(err, msg)
	}
}
