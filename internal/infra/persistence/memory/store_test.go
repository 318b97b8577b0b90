package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(customerID uuid.UUID) *entity.Order {
	return &entity.Order{
		CustomerID:  customerID,
		TotalAmount: decimal.RequireFromString("50.00"),
		Status:      entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{ProductID: uuid.New(), ProductName: "Mug", Quantity: 1, UnitPrice: decimal.RequireFromString("50.00")},
		},
	}
}

func TestExecute_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repos := store.Repositories()

	product := &entity.Product{Name: "Tee", StockQuantity: 5, Active: true}
	require.NoError(t, repos.NewProductRepository().Create(ctx, product))

	boom := errors.New("boom")
	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		require.NoError(t, f.NewProductRepository().DecrementStock(ctx, product.ID, 3))
		require.NoError(t, f.NewOrderRepository().Create(ctx, newOrder(uuid.New())))

		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := repos.NewProductRepository().FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockQuantity)

	orders, err := repos.NewOrderRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestExecute_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	assert.Panics(t, func() {
		_ = store.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.NewUserRepository().Create(ctx, &entity.User{Email: "a@example.com"})
			panic("boom")
		})
	})

	_, err := store.Repositories().NewUserRepository().FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestExecute_HidesUncommittedWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := store.Repositories().NewProductRepository()

	product := &entity.Product{Name: "Tee", StockQuantity: 5, Active: true}
	require.NoError(t, products.Create(ctx, product))

	outsideStock := func() int {
		stored, err := products.FindByID(ctx, product.ID)
		require.NoError(t, err)

		return stored.StockQuantity
	}

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		txProducts := f.NewProductRepository()
		require.NoError(t, txProducts.DecrementStock(ctx, product.ID, 2))

		inside, err := txProducts.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, inside.StockQuantity)
		assert.Equal(t, 5, outsideStock())

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, outsideStock())

	boom := errors.New("boom")
	err = store.Execute(ctx, func(f repository.RepositoryFactory) error {
		require.NoError(t, f.NewProductRepository().DecrementStock(ctx, product.ID, 3))
		assert.Equal(t, 3, outsideStock())

		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, outsideStock())
}

func TestUserRepository_EmailIsUniqueAndCaseSensitive(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Repositories().NewUserRepository()

	require.NoError(t, users.Create(ctx, &entity.User{Email: "Ann@example.com"}))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{Email: "Ann@example.com"}), repository.ErrEmailTaken)
	assert.NoError(t, users.Create(ctx, &entity.User{Email: "ann@example.com"}))
}

func TestAddressRepository_SingleDefault(t *testing.T) {
	ctx := context.Background()
	addresses := NewStore().Repositories().NewAddressRepository()
	userID := uuid.New()

	a := &entity.Address{UserID: userID, IsDefault: true, Active: true}
	require.NoError(t, addresses.CreateAddress(ctx, a))

	b := &entity.Address{UserID: userID, IsDefault: true, Active: true}
	assert.ErrorIs(t, addresses.CreateAddress(ctx, b), repository.ErrDefaultAddressConflict)

	cleared, err := addresses.ClearDefaultAddresses(ctx, userID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)
	require.NoError(t, addresses.CreateAddress(ctx, b))

	def, err := addresses.FindDefaultAddressByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, def.ID)

	require.NoError(t, addresses.DeactivateAddress(ctx, b.ID))
	_, err = addresses.FindDefaultAddressByUser(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)

	active, err := addresses.FindActiveAddressesByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)
	assert.False(t, active[0].IsDefault)
}

func TestOrderRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	orders := NewStore().Repositories().NewOrderRepository()
	order := newOrder(uuid.New())
	require.NoError(t, orders.Create(ctx, order))

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, to := range []entity.OrderStatus{entity.OrderStatusPaid, entity.OrderStatusCancelled} {
		wg.Add(1)
		go func(to entity.OrderStatus) {
			defer wg.Done()
			results <- orders.UpdateStatus(ctx, repository.StatusChange{
				OrderID: order.ID, From: entity.OrderStatusPending, To: to, At: time.Now(),
			})
		}(to)
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, repository.ErrOrderStatusMismatch):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	err := orders.UpdateStatus(ctx, repository.StatusChange{OrderID: uuid.New(), From: entity.OrderStatusPending, To: entity.OrderStatusPaid})
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_ReadsAreIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	orders := NewStore().Repositories().NewOrderRepository()
	order := newOrder(uuid.New())
	require.NoError(t, orders.Create(ctx, order))

	order.Items[0].Quantity = 99
	loaded, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Items[0].Quantity)

	loaded.Status = entity.OrderStatusShipped
	again, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, again.Status)
}

func TestOrderRepository_FindMissingTracking(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := base
	store.now = func() time.Time {
		tick = tick.Add(time.Minute)

		return tick
	}
	orders := store.Repositories().NewOrderRepository()

	first, second, third := newOrder(uuid.New()), newOrder(uuid.New()), newOrder(uuid.New())
	require.NoError(t, orders.Create(ctx, first))
	require.NoError(t, orders.Create(ctx, second))
	require.NoError(t, orders.Create(ctx, third))
	require.NoError(t, orders.AttachTrackingURL(ctx, first.ID, "data:image/png;base64,AA=="))

	missing, err := orders.FindMissingTracking(ctx, base.Add(time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, second.ID, missing[0].ID)

	missing, err = orders.FindMissingTracking(ctx, third.CreatedAt, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, second.ID, missing[0].ID)
}

func TestProductRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	products := NewStore().Repositories().NewProductRepository()
	p := &entity.Product{Name: "Cap", StockQuantity: 2, Active: true}
	require.NoError(t, products.Create(ctx, p))

	require.NoError(t, products.DecrementStock(ctx, p.ID, 2))
	assert.ErrorIs(t, products.DecrementStock(ctx, p.ID, 1), repository.ErrInsufficientStock)
	assert.ErrorIs(t, products.DecrementStock(ctx, uuid.New(), 1), repository.ErrProductNotFound)
}

func TestDesignAssetRepository_TypeIsUnique(t *testing.T) {
	ctx := context.Background()
	assets := NewStore().Repositories().NewDesignAssetRepository()

	tee := &entity.DesignAsset{Name: "T-Shirt", Type: "tshirt", BasePrice: decimal.RequireFromString("500.00")}
	require.NoError(t, assets.Create(ctx, tee))
	assert.ErrorIs(t, assets.Create(ctx, &entity.DesignAsset{Name: "Tee", Type: "tshirt"}), repository.ErrDesignAssetTypeTaken)

	tee.Name = "Classic Tee"
	tee.Type = "renamed"
	require.NoError(t, assets.Update(ctx, tee))
	stored, err := assets.FindByID(ctx, tee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", stored.Name)
	assert.Equal(t, "tshirt", stored.Type)

	n, err := assets.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, assets.Delete(ctx, tee.ID))
	assert.ErrorIs(t, assets.Delete(ctx, tee.ID), repository.ErrDesignAssetNotFound)
	_, err = assets.FindByID(ctx, tee.ID)
	assert.ErrorIs(t, err, repository.ErrDesignAssetNotFound)
}
