package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productInput(name, price string) usecase.ProductInput {
	return usecase.ProductInput{
		Name:           name,
		Category:       "mugs",
		BasePrice:      decimal.RequireFromString(price),
		AvailableSizes: []string{"350ml"},
		StockQuantity:  20,
	}
}

func TestCatalogService_AdminLifecycle(t *testing.T) {
	f := newServiceFixtures(t)
	admin := f.seedUser(t, entity.RoleAdmin)
	ctx := context.Background()

	created, err := f.catalog.CreateProduct(ctx, admin, productInput("Mug", "12.50"))
	require.NoError(t, err)
	assert.True(t, created.Active)

	adminUser, err := f.repos.NewUserRepository().FindByID(ctx, admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, adminUser.TenantID, created.TenantID)

	updated, err := f.catalog.UpdateProduct(ctx, admin, created.ID, productInput("Big Mug", "15.00"))
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", updated.Name)
	assert.True(t, updated.Active)

	listed, err := f.catalog.ListProducts(ctx, "mugs")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, f.catalog.DeactivateProduct(ctx, admin, created.ID))

	_, err = f.catalog.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	listed, err = f.catalog.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCatalogService_MutationsRequireAdmin(t *testing.T) {
	f := newServiceFixtures(t)
	worker := f.seedUser(t, entity.RoleWorker)
	customer := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	_, err := f.catalog.CreateProduct(ctx, worker, productInput("Mug", "12.50"))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = f.catalog.CreateProduct(ctx, nil, productInput("Mug", "12.50"))
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	assert.ErrorIs(t, f.catalog.DeactivateProduct(ctx, customer, uuid.New()), domainerrors.ErrForbidden)
}

func TestCatalogService_Validation(t *testing.T) {
	f := newServiceFixtures(t)
	admin := f.seedUser(t, entity.RoleAdmin)
	ctx := context.Background()

	_, err := f.catalog.CreateProduct(ctx, admin, productInput(" ", "1.00"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.catalog.CreateProduct(ctx, admin, productInput("Mug", "1.005"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.catalog.CreateProduct(ctx, admin, productInput("Mug", "-1"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.catalog.UpdateProduct(ctx, admin, uuid.New(), productInput("Mug", "1.00"))
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
