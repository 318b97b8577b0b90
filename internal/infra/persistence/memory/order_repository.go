package memory

import (
	"context"
	"slices"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type orderRepository struct {
	store *Store
	tx    *state // Nil outside a transaction.
}

func (r *orderRepository) Create(_ context.Context, order *entity.Order) error {
	return r.store.write(r.tx, func(st *state) error {
		if order.ID == uuid.Nil {
			order.ID = uuid.New()
		}
		for i := range order.Items {
			if order.Items[i].ID == uuid.Nil {
				order.Items[i].ID = uuid.New()
			}
		}
		r.store.touch(&order.CreatedAt, &order.UpdatedAt)
		st.orders[order.ID] = cloneOrder(order)

		return nil
	})
}

func (r *orderRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	var found *entity.Order
	err := r.store.read(r.tx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return repository.ErrOrderNotFound
		}
		found = cloneOrder(o)

		return nil
	})

	return found, err
}

func (r *orderRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	return r.collect(func(o *entity.Order) bool { return o.CustomerID == customerID }, newestFirst, 0)
}

func (r *orderRepository) FindAll(_ context.Context) ([]*entity.Order, error) {
	return r.collect(func(*entity.Order) bool { return true }, newestFirst, 0)
}

func (r *orderRepository) UpdateStatus(_ context.Context, change repository.StatusChange) error {
	return r.store.write(r.tx, func(st *state) error {
		o, ok := st.orders[change.OrderID]
		if !ok {
			return repository.ErrOrderNotFound
		}
		if o.Status != change.From {
			return repository.ErrOrderStatusMismatch
		}
		o.Status = change.To
		o.HeldFrom = nil
		if change.HeldFrom != nil {
			heldFrom := *change.HeldFrom
			o.HeldFrom = &heldFrom
		}
		o.UpdatedAt = change.At

		return nil
	})
}

func (r *orderRepository) AttachTrackingURL(_ context.Context, id uuid.UUID, url string) error {
	return r.store.write(r.tx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return repository.ErrOrderNotFound
		}
		o.TrackingTokenURL = &url

		return nil
	})
}

func (r *orderRepository) FindMissingTracking(_ context.Context, createdBefore time.Time, limit int) ([]*entity.Order, error) {
	return r.collect(func(o *entity.Order) bool {
		return o.TrackingTokenURL == nil && o.CreatedAt.Before(createdBefore)
	}, oldestFirst, limit)
}

func newestFirst(a, b *entity.Order) int { return b.CreatedAt.Compare(a.CreatedAt) }

func oldestFirst(a, b *entity.Order) int { return a.CreatedAt.Compare(b.CreatedAt) }

func (r *orderRepository) collect(match func(*entity.Order) bool, order func(a, b *entity.Order) int, limit int) ([]*entity.Order, error) {
	var result []*entity.Order
	err := r.store.read(r.tx, func(st *state) error {
		for _, o := range st.orders {
			if match(o) {
				result = append(result, cloneOrder(o))
			}
		}

		return nil
	})
	slices.SortFunc(result, order)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, err
}
