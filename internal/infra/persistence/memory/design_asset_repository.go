package memory

import (
	"context"
	"slices"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type designAssetRepository struct {
	store *Store
	tx    *state // Nil outside a transaction.
}

func (r *designAssetRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.DesignAsset, error) {
	var found *entity.DesignAsset
	err := r.store.read(r.tx, func(st *state) error {
		a, ok := st.assets[id]
		if !ok {
			return repository.ErrDesignAssetNotFound
		}
		found = cloneDesignAsset(a)

		return nil
	})

	return found, err
}

func (r *designAssetRepository) List(_ context.Context) ([]*entity.DesignAsset, error) {
	var result []*entity.DesignAsset
	err := r.store.read(r.tx, func(st *state) error {
		for _, a := range st.assets {
			result = append(result, cloneDesignAsset(a))
		}

		return nil
	})
	slices.SortFunc(result, func(a, b *entity.DesignAsset) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result, err
}

func (r *designAssetRepository) Count(_ context.Context) (int64, error) {
	var n int64
	err := r.store.read(r.tx, func(st *state) error {
		n = int64(len(st.assets))

		return nil
	})

	return n, err
}

func (r *designAssetRepository) Create(_ context.Context, asset *entity.DesignAsset) error {
	return r.store.write(r.tx, func(st *state) error {
		for _, a := range st.assets {
			if a.Type == asset.Type {
				return repository.ErrDesignAssetTypeTaken
			}
		}
		if asset.ID == uuid.Nil {
			asset.ID = uuid.New()
		}
		r.store.touch(&asset.CreatedAt, &asset.UpdatedAt)
		st.assets[asset.ID] = cloneDesignAsset(asset)

		return nil
	})
}

func (r *designAssetRepository) Update(_ context.Context, asset *entity.DesignAsset) error {
	return r.store.write(r.tx, func(st *state) error {
		existing, ok := st.assets[asset.ID]
		if !ok {
			return repository.ErrDesignAssetNotFound
		}
		asset.Type = existing.Type
		asset.CreatedAt = existing.CreatedAt
		r.store.touch(&asset.CreatedAt, &asset.UpdatedAt)
		st.assets[asset.ID] = cloneDesignAsset(asset)

		return nil
	})
}

func (r *designAssetRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.write(r.tx, func(st *state) error {
		if _, ok := st.assets[id]; !ok {
			return repository.ErrDesignAssetNotFound
		}
		delete(st.assets, id)

		return nil
	})
}
