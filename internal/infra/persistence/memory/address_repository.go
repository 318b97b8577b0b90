package memory

import (
	"context"
	"slices"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type addressRepository struct {
	store *Store
	tx    *state // Nil outside a transaction.
}

// hasOtherDefault mirrors the partial unique index of the relational schema.
func hasOtherDefault(st *state, a *entity.Address) bool {
	if !a.IsDefault || !a.Active {
		return false
	}
	for id, other := range st.addresses {
		if id != a.ID && other.UserID == a.UserID && other.Active && other.IsDefault {
			return true
		}
	}

	return false
}

func (r *addressRepository) CreateAddress(_ context.Context, address *entity.Address) error {
	return r.store.write(r.tx, func(st *state) error {
		if address.ID == uuid.Nil {
			address.ID = uuid.New()
		}
		if hasOtherDefault(st, address) {
			return repository.ErrDefaultAddressConflict
		}
		r.store.touch(&address.CreatedAt, &address.UpdatedAt)
		st.addresses[address.ID] = cloneAddress(address)

		return nil
	})
}

func (r *addressRepository) FindAddressByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	var found *entity.Address
	err := r.store.read(r.tx, func(st *state) error {
		a, ok := st.addresses[id]
		if !ok {
			return repository.ErrAddressNotFound
		}
		found = cloneAddress(a)

		return nil
	})

	return found, err
}

func (r *addressRepository) FindActiveAddressesByUser(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var result []*entity.Address
	err := r.store.read(r.tx, func(st *state) error {
		for _, a := range st.addresses {
			if a.UserID == userID && a.Active {
				result = append(result, cloneAddress(a))
			}
		}

		return nil
	})
	slices.SortFunc(result, func(a, b *entity.Address) int {
		if a.IsDefault != b.IsDefault {
			if a.IsDefault {
				return -1
			}

			return 1
		}

		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return result, err
}

func (r *addressRepository) FindDefaultAddressByUser(_ context.Context, userID uuid.UUID) (*entity.Address, error) {
	var found *entity.Address
	err := r.store.read(r.tx, func(st *state) error {
		for _, a := range st.addresses {
			if a.UserID == userID && a.Active && a.IsDefault {
				found = cloneAddress(a)

				return nil
			}
		}

		return repository.ErrAddressNotFound
	})

	return found, err
}

func (r *addressRepository) UpdateAddress(_ context.Context, address *entity.Address) error {
	return r.store.write(r.tx, func(st *state) error {
		existing, ok := st.addresses[address.ID]
		if !ok {
			return repository.ErrAddressNotFound
		}
		if hasOtherDefault(st, address) {
			return repository.ErrDefaultAddressConflict
		}
		address.UserID = existing.UserID
		address.CreatedAt = existing.CreatedAt
		r.store.touch(&address.CreatedAt, &address.UpdatedAt)
		st.addresses[address.ID] = cloneAddress(address)

		return nil
	})
}

func (r *addressRepository) ClearDefaultAddresses(_ context.Context, userID, exceptID uuid.UUID) (int64, error) {
	var cleared int64
	err := r.store.write(r.tx, func(st *state) error {
		now := r.store.now()
		for id, a := range st.addresses {
			if id != exceptID && a.UserID == userID && a.Active && a.IsDefault {
				a.IsDefault = false
				a.UpdatedAt = now
				cleared++
			}
		}

		return nil
	})

	return cleared, err
}

func (r *addressRepository) DeactivateAddress(_ context.Context, id uuid.UUID) error {
	return r.store.write(r.tx, func(st *state) error {
		a, ok := st.addresses[id]
		if !ok || !a.Active {
			return repository.ErrAddressNotFound
		}
		a.Active = false
		a.UpdatedAt = r.store.now()

		return nil
	})
}
