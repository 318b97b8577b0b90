package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// addressService implements the AddressUsecase interface.
// Default-flag changes run in one transaction that first locks the owning
// user, so concurrent requests for the same user apply one after another.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	authorizer  usecase.Authorizer
	logger      *slog.Logger
}

// AddressServiceParams holds dependencies for AddressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AddressRepo repository.AddressRepository
	Authorizer  usecase.Authorizer
	Logger      *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager:   params.TxManager,
		addressRepo: params.AddressRepo,
		authorizer:  params.Authorizer,
		logger:      params.Logger,
	}
}

func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddAddress stores a new address for the caller. A default address takes the
// flag from every sibling in the same transaction.
func (srv *addressService) AddAddress(ctx context.Context, principal *entity.Principal, input usecase.AddressInput) (*entity.Address, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionCreateAddress); err != nil {
		return nil, err
	}

	address := &entity.Address{
		ID:     uuid.New(),
		UserID: principal.UserID,
		Active: true,
	}
	applyAddressInput(address, input)
	if err := validateAddress(address); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := lockUser(ctx, repos, address.UserID); err != nil {
			return err
		}
		addresses := repos.NewAddressRepository()
		if address.IsDefault {
			if err := srv.clearSiblings(ctx, addresses, address); err != nil {
				return err
			}
		}

		return addresses.CreateAddress(ctx, address)
	})
	if err != nil {
		return nil, translateAddressError(err, "failed to add address")
	}

	srv.log(ctx).Info("Address added",
		slog.String("addressID", address.ID.String()),
		slog.Bool("isDefault", address.IsDefault),
	)

	return address, nil
}

// UpdateAddress replaces the editable fields. Unless the input asks for the
// default flag, the address is explicitly stored as not default.
func (srv *addressService) UpdateAddress(ctx context.Context, principal *entity.Principal, id uuid.UUID, input usecase.AddressInput) (*entity.Address, error) {
	current, err := srv.findManaged(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	var updated *entity.Address
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := lockUser(ctx, repos, current.UserID); err != nil {
			return err
		}
		addresses := repos.NewAddressRepository()

		// Re-read under the lock; the address may have been deleted meanwhile.
		address, err := srv.findActive(ctx, addresses, id)
		if err != nil {
			return err
		}
		applyAddressInput(address, input)
		if err := validateAddress(address); err != nil {
			return err
		}
		if address.IsDefault {
			if err := srv.clearSiblings(ctx, addresses, address); err != nil {
				return err
			}
		}
		if err := addresses.UpdateAddress(ctx, address); err != nil {
			return err
		}
		updated = address

		return nil
	})
	if err != nil {
		return nil, translateAddressError(err, "failed to update address")
	}

	return updated, nil
}

// DeleteAddress soft-deletes the address. No other address is promoted to default.
func (srv *addressService) DeleteAddress(ctx context.Context, principal *entity.Principal, id uuid.UUID) error {
	address, err := srv.findManaged(ctx, principal, id)
	if err != nil {
		return err
	}

	if err := srv.addressRepo.DeactivateAddress(ctx, id); err != nil {
		return translateAddressError(err, "failed to delete address")
	}

	srv.log(ctx).Info("Address deactivated",
		slog.String("addressID", id.String()),
		slog.Bool("wasDefault", address.IsDefault),
	)

	return nil
}

func (srv *addressService) ListActiveAddresses(ctx context.Context, principal *entity.Principal) ([]*entity.Address, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionViewOwn); err != nil {
		return nil, err
	}

	addresses, err := srv.addressRepo.FindActiveAddressesByUser(ctx, principal.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// findManaged loads an active address the caller may change. Another user's
// address is reported as not found, so responses do not reveal which ids exist.
func (srv *addressService) findManaged(ctx context.Context, principal *entity.Principal, id uuid.UUID) (*entity.Address, error) {
	if err := srv.authorizer.Authorize(ctx, principal, usecase.ActionViewOwn); err != nil {
		return nil, err
	}

	address, err := srv.findActive(ctx, srv.addressRepo, id)
	if err != nil {
		return nil, err
	}

	err = srv.authorizer.AuthorizeOwned(ctx, principal, usecase.ActionManageAddress, address.UserID)
	if errors.Is(err, domainerrors.ErrForbidden) {
		return nil, domainerrors.ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (srv *addressService) findActive(ctx context.Context, repo repository.AddressRepository, id uuid.UUID) (*entity.Address, error) {
	address, err := repo.FindAddressByID(ctx, id)
	if errors.Is(err, repository.ErrAddressNotFound) {
		return nil, domainerrors.ErrAddressNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find address")
	}
	if !address.Active {
		return nil, domainerrors.ErrAddressNotFound
	}

	return address, nil
}

func (srv *addressService) clearSiblings(ctx context.Context, repo repository.AddressRepository, address *entity.Address) error {
	cleared, err := repo.ClearDefaultAddresses(ctx, address.UserID, address.ID)
	if err != nil {
		return err
	}
	if cleared > 0 {
		srv.log(ctx).Debug("Previous default address cleared", slog.String("userID", address.UserID.String()))
	}

	return nil
}

func lockUser(ctx context.Context, repos repository.RepositoryFactory, userID uuid.UUID) error {
	err := repos.NewUserRepository().LockByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	return err
}

func applyAddressInput(address *entity.Address, input usecase.AddressInput) {
	address.FullName = strings.TrimSpace(input.FullName)
	address.StreetAddress = strings.TrimSpace(input.StreetAddress)
	address.AptSuite = strings.TrimSpace(input.AptSuite)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.PostalCode = strings.TrimSpace(input.PostalCode)
	address.Country = strings.TrimSpace(input.Country)
	address.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	address.Latitude = input.Latitude
	address.Longitude = input.Longitude
	address.IsDefault = input.IsDefault
}

func validateAddress(address *entity.Address) error {
	if missing := address.MissingFields(); len(missing) > 0 {
		return domainerrors.ErrInvalidAddress.WithDetails("missing " + strings.Join(missing, ", "))
	}
	if !address.HasValidCoordinates() {
		return domainerrors.ErrInvalidAddress.WithDetails("coordinates out of range")
	}

	return nil
}

func translateAddressError(err error, msg string) error {
	if errors.Is(err, repository.ErrDefaultAddressConflict) {
		return domainerrors.ErrDefaultAddressConflict
	}
	if errors.Is(err, repository.ErrAddressNotFound) {
		return domainerrors.ErrAddressNotFound
	}

	return passAppError(err, msg)
}
