package memory

import (
	"context"
	"slices"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	store *Store
	tx    *state // Nil outside a transaction.
}

func (r *productRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	var found *entity.Product
	err := r.store.read(r.tx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}
		found = cloneProduct(p)

		return nil
	})

	return found, err
}

func (r *productRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	var result []*entity.Product
	err := r.store.read(r.tx, func(st *state) error {
		for _, id := range ids {
			if p, ok := st.products[id]; ok {
				result = append(result, cloneProduct(p))
			}
		}

		return nil
	})

	return result, err
}

func (r *productRepository) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var result []*entity.Product
	err := r.store.read(r.tx, func(st *state) error {
		for _, p := range st.products {
			if filter.ActiveOnly && !p.Active {
				continue
			}
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			result = append(result, cloneProduct(p))
		}

		return nil
	})
	slices.SortFunc(result, func(a, b *entity.Product) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return result, err
}

func (r *productRepository) Create(_ context.Context, product *entity.Product) error {
	return r.store.write(r.tx, func(st *state) error {
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		r.store.touch(&product.CreatedAt, &product.UpdatedAt)
		st.products[product.ID] = cloneProduct(product)

		return nil
	})
}

func (r *productRepository) Update(_ context.Context, product *entity.Product) error {
	return r.store.write(r.tx, func(st *state) error {
		existing, ok := st.products[product.ID]
		if !ok {
			return repository.ErrProductNotFound
		}
		product.TenantID = existing.TenantID
		product.CreatedAt = existing.CreatedAt
		r.store.touch(&product.CreatedAt, &product.UpdatedAt)
		st.products[product.ID] = cloneProduct(product)

		return nil
	})
}

func (r *productRepository) DecrementStock(_ context.Context, id uuid.UUID, qty int) error {
	return r.store.write(r.tx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}
		if p.StockQuantity < qty {
			return repository.ErrInsufficientStock
		}
		p.StockQuantity -= qty
		p.UpdatedAt = r.store.now()

		return nil
	})
}
