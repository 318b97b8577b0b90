package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput carries every editable product field.
type ProductInput struct {
	Name            string
	Description     string
	Category        string
	Images          []string
	BasePrice       decimal.Decimal
	AvailableSizes  []string
	AvailableColors []string
	StockQuantity   int
	Active          *bool // Defaults to true on create and is unchanged on update when nil.
}

// CatalogUsecase serves public product reads and ADMIN-only mutations.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, category string) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, principal *entity.Principal, input ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, principal *entity.Principal, id uuid.UUID, input ProductInput) (*entity.Product, error)
	DeactivateProduct(ctx context.Context, principal *entity.Principal, id uuid.UUID) error
}
