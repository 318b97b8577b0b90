package memory

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
	tx    *state // Nil outside a transaction.
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := r.store.read(r.tx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = cloneUser(u)

		return nil
	})

	return found, err
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := r.store.read(r.tx, func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				found = cloneUser(u)

				return nil
			}
		}

		return repository.ErrUserNotFound
	})

	return found, err
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	return r.store.write(r.tx, func(st *state) error {
		for _, u := range st.users {
			if u.Email == user.Email {
				return repository.ErrEmailTaken
			}
		}
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		r.store.touch(&user.CreatedAt, &user.UpdatedAt)
		st.users[user.ID] = cloneUser(user)

		return nil
	})
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	return r.store.write(r.tx, func(st *state) error {
		existing, ok := st.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		for id, u := range st.users {
			if id != user.ID && u.Email == user.Email {
				return repository.ErrEmailTaken
			}
		}
		user.CreatedAt = existing.CreatedAt
		r.store.touch(&user.CreatedAt, &user.UpdatedAt)
		st.users[user.ID] = cloneUser(user)

		return nil
	})
}

// LockByID only checks existence; an open transaction already excludes other writers.
func (r *userRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.FindByID(ctx, id)

	return err
}
