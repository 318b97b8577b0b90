package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a stock decrement would go below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category   string
	ActiveOnly bool
}

// ProductRepository defines catalog persistence.
type ProductRepository interface {
	// FindByID retrieves a product by ID regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the products with the given IDs; missing IDs are simply absent.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// List returns products matching the filter, newest first.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update writes every mutable field of an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// DecrementStock lowers stock by qty only if enough stock remains.
	// Returns ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}
