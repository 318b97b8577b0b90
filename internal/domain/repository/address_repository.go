package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for address persistence.
var (
	// ErrAddressNotFound is returned when an address is not found.
	ErrAddressNotFound = errors.New("address not found")
	// ErrDefaultAddressConflict is returned when a second active default address would exist for a user.
	ErrDefaultAddressConflict = errors.New("user already has a default address")
)

// AddressRepository defines the interface for address-related database operations.
type AddressRepository interface {
	// CreateAddress persists a new address.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressByID retrieves an address by its unique ID, active or not.
	FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// FindActiveAddressesByUser retrieves all active addresses of a user.
	FindActiveAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// FindDefaultAddressByUser retrieves the active default address of a user.
	// Returns ErrAddressNotFound if none is set.
	FindDefaultAddressByUser(ctx context.Context, userID uuid.UUID) (*entity.Address, error)

	// UpdateAddress writes every mutable field of an existing address.
	UpdateAddress(ctx context.Context, address *entity.Address) error

	// ClearDefaultAddresses unsets the default flag on every active address of the user
	// except exceptID, in a single conditional statement. Returns the number of rows changed.
	ClearDefaultAddresses(ctx context.Context, userID, exceptID uuid.UUID) (int64, error)

	// DeactivateAddress soft-deletes an address by clearing its active flag.
	DeactivateAddress(ctx context.Context, id uuid.UUID) error
}
