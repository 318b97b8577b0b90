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

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	authorizer  usecase.Authorizer
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	Authorizer  usecase.Authorizer
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		authorizer:  params.Authorizer,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogService) ListProducts(ctx context.Context, category string) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, repository.ProductFilter{
		Category:   strings.TrimSpace(category),
		ActiveOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct hides inactive products from public reads.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, domainerrors.ErrProductNotFound
	}

	return product, nil
}

// CreateProduct stores a product under the calling admin's tenant.
func (srv *catalogService) CreateProduct(ctx context.Context, principal *entity.Principal, input usecase.ProductInput) (*entity.Product, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionMutateCatalog); err != nil {
		return nil, err
	}

	admin, err := srv.userRepo.FindByID(ctx, principal.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	product := &entity.Product{
		ID:       uuid.New(),
		TenantID: admin.TenantID,
		Active:   true,
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.String("productID", product.ID.String()))

	return product, nil
}

func (srv *catalogService) UpdateProduct(ctx context.Context, principal *entity.Principal, id uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionMutateCatalog); err != nil {
		return nil, err
	}

	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeactivateProduct hides the product. Existing orders keep their snapshots.
func (srv *catalogService) DeactivateProduct(ctx context.Context, principal *entity.Principal, id uuid.UUID) error {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionMutateCatalog); err != nil {
		return err
	}

	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return err
	}
	if !product.Active {
		return nil
	}

	product.Active = false
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return errors.Wrap(err, "failed to deactivate product")
	}

	srv.log(ctx).Info("Product deactivated", slog.String("productID", id.String()))

	return nil
}

func (srv *catalogService) findProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func applyProductInput(product *entity.Product, input usecase.ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if input.BasePrice.IsNegative() || !entity.IsMoneyPrecise(input.BasePrice) {
		return domainerrors.ErrValidationFailed.WithDetails("basePrice must be a non-negative amount with at most 2 decimals")
	}
	if input.StockQuantity < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("stockQuantity must not be negative")
	}

	product.Name = name
	product.Description = input.Description
	product.Category = strings.TrimSpace(input.Category)
	product.Images = input.Images
	product.BasePrice = input.BasePrice
	product.AvailableSizes = input.AvailableSizes
	product.AvailableColors = input.AvailableColors
	product.StockQuantity = input.StockQuantity
	if input.Active != nil {
		product.Active = *input.Active
	}

	return nil
}
