package impl

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddressInput(isDefault bool) usecase.AddressInput {
	return usecase.AddressInput{
		FullName:      "Asha Rao",
		StreetAddress: "12 Residency Road",
		City:          "Bengaluru",
		State:         "KA",
		PostalCode:    "560025",
		Country:       "IN",
		PhoneNumber:   "+91 80 5555 0101",
		IsDefault:     isDefault,
	}
}

func countDefaults(t *testing.T, f *serviceFixtures, principal *entity.Principal) int {
	t.Helper()

	addresses, err := f.addresses.ListActiveAddresses(context.Background(), principal)
	require.NoError(t, err)

	n := 0
	for _, a := range addresses {
		if a.IsDefault {
			n++
		}
	}

	return n
}

func TestAddressService_SecondDefaultReplacesFirst(t *testing.T) {
	f := newServiceFixtures(t)
	user := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	a, err := f.addresses.AddAddress(ctx, user, validAddressInput(true))
	require.NoError(t, err)
	b, err := f.addresses.AddAddress(ctx, user, validAddressInput(true))
	require.NoError(t, err)

	storedA, err := f.repos.NewAddressRepository().FindAddressByID(ctx, a.ID)
	require.NoError(t, err)
	storedB, err := f.repos.NewAddressRepository().FindAddressByID(ctx, b.ID)
	require.NoError(t, err)

	assert.False(t, storedA.IsDefault)
	assert.True(t, storedB.IsDefault)
	assert.Equal(t, 1, countDefaults(t, f, user))
}

func TestAddressService_ConcurrentDefaults(t *testing.T) {
	f := newServiceFixtures(t)
	user := f.seedUser(t, entity.RoleCustomer)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			_, err := f.addresses.AddAddress(context.Background(), user, validAddressInput(true))
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Equal(t, 1, countDefaults(t, f, user))
}

func TestAddressService_UpdateWithoutFlagClearsDefault(t *testing.T) {
	f := newServiceFixtures(t)
	user := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	a, err := f.addresses.AddAddress(ctx, user, validAddressInput(true))
	require.NoError(t, err)

	input := validAddressInput(false)
	input.City = "Mysuru"
	updated, err := f.addresses.UpdateAddress(ctx, user, a.ID, input)
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assert.Equal(t, "Mysuru", updated.City)
	assert.Equal(t, 0, countDefaults(t, f, user))
}

func TestAddressService_UpdateToDefaultClearsSiblings(t *testing.T) {
	f := newServiceFixtures(t)
	user := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	a, err := f.addresses.AddAddress(ctx, user, validAddressInput(true))
	require.NoError(t, err)
	b, err := f.addresses.AddAddress(ctx, user, validAddressInput(false))
	require.NoError(t, err)

	_, err = f.addresses.UpdateAddress(ctx, user, b.ID, validAddressInput(true))
	require.NoError(t, err)

	storedA, err := f.repos.NewAddressRepository().FindAddressByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, storedA.IsDefault)
	assert.Equal(t, 1, countDefaults(t, f, user))
}

func TestAddressService_DeleteDoesNotPromote(t *testing.T) {
	f := newServiceFixtures(t)
	user := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	a, err := f.addresses.AddAddress(ctx, user, validAddressInput(true))
	require.NoError(t, err)
	_, err = f.addresses.AddAddress(ctx, user, validAddressInput(false))
	require.NoError(t, err)

	require.NoError(t, f.addresses.DeleteAddress(ctx, user, a.ID))

	active, err := f.addresses.ListActiveAddresses(ctx, user)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, 0, countDefaults(t, f, user))

	assert.ErrorIs(t, f.addresses.DeleteAddress(ctx, user, a.ID), domainerrors.ErrAddressNotFound)
}

func TestAddressService_Ownership(t *testing.T) {
	f := newServiceFixtures(t)
	owner := f.seedUser(t, entity.RoleCustomer)
	stranger := f.seedUser(t, entity.RoleCustomer)
	admin := f.seedUser(t, entity.RoleAdmin)
	worker := f.seedUser(t, entity.RoleWorker)
	ctx := context.Background()

	a, err := f.addresses.AddAddress(ctx, owner, validAddressInput(false))
	require.NoError(t, err)

	_, err = f.addresses.UpdateAddress(ctx, stranger, a.ID, validAddressInput(false))
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
	assert.ErrorIs(t, f.addresses.DeleteAddress(ctx, stranger, a.ID), domainerrors.ErrAddressNotFound)
	assert.ErrorIs(t, f.addresses.DeleteAddress(ctx, worker, a.ID), domainerrors.ErrAddressNotFound)

	_, err = f.addresses.AddAddress(ctx, worker, validAddressInput(false))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = f.addresses.UpdateAddress(ctx, admin, a.ID, validAddressInput(true))
	require.NoError(t, err)

	_, err = f.addresses.UpdateAddress(ctx, owner, uuid.New(), validAddressInput(false))
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
}

func TestAddressService_ForeignAndMissingIdsLookAlike(t *testing.T) {
	f := newServiceFixtures(t)
	owner := f.seedUser(t, entity.RoleCustomer)
	stranger := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	a, err := f.addresses.AddAddress(ctx, owner, validAddressInput(true))
	require.NoError(t, err)

	for name, id := range map[string]uuid.UUID{"existing": a.ID, "missing": uuid.New()} {
		t.Run(name, func(t *testing.T) {
			_, err := f.addresses.UpdateAddress(ctx, stranger, id, validAddressInput(false))
			assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
			assert.ErrorIs(t, f.addresses.DeleteAddress(ctx, stranger, id), domainerrors.ErrAddressNotFound)

			_, err = f.addresses.UpdateAddress(ctx, nil, id, validAddressInput(false))
			assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
			assert.ErrorIs(t, f.addresses.DeleteAddress(ctx, nil, id), domainerrors.ErrUnauthenticated)
		})
	}

	assert.Equal(t, 1, countDefaults(t, f, owner))
}

func TestAddressService_Validation(t *testing.T) {
	f := newServiceFixtures(t)
	user := f.seedUser(t, entity.RoleCustomer)
	ctx := context.Background()

	missing := validAddressInput(false)
	missing.PostalCode = "  "
	_, err := f.addresses.AddAddress(ctx, user, missing)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAddress)

	badLat := 91.0
	outOfRange := validAddressInput(false)
	outOfRange.Latitude = &badLat
	_, err = f.addresses.AddAddress(ctx, user, outOfRange)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAddress)

	_, err = f.addresses.AddAddress(ctx, nil, validAddressInput(false))
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
