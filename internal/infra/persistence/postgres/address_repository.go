package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// addressRepository implements the domain.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// CreateAddress persists a new address for a user.
func (repo *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		return translateAddressError(err, "failed to create address")
	}

	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindAddressByID retrieves an address by its unique ID.
func (repo *addressRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&addressM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by ID")
	}

	return toAddressDomain(&addressM), nil
}

// FindActiveAddressesByUser retrieves all active addresses of a user, default first.
func (repo *addressRepository) FindActiveAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var addressModels []*model.AddressModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND active", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addressModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find addresses by user")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// FindDefaultAddressByUser retrieves the active default address of a user.
func (repo *addressRepository) FindDefaultAddressByUser(ctx context.Context, userID uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND active AND is_default", userID).
		First(&addressM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find default address")
	}

	return toAddressDomain(&addressM), nil
}

// UpdateAddress updates every mutable column of an existing address.
func (repo *addressRepository) UpdateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)
	addressM.UpdatedAt = time.Now()

	// Select("*") writes zero values too, so an explicit false default flag is persisted.
	result := repo.db.WithContext(ctx).Model(addressM).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(addressM)
	if result.Error != nil {
		return translateAddressError(result.Error, "failed to update address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// ClearDefaultAddresses unsets is_default on the user's other active addresses in one statement.
func (repo *addressRepository) ClearDefaultAddresses(ctx context.Context, userID, exceptID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).Model(&model.AddressModel{}).
		Where("user_id = ? AND active AND is_default AND id <> ?", userID, exceptID).
		Updates(map[string]any{"is_default": false, "updated_at": time.Now()})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear default addresses")
	}

	return result.RowsAffected, nil
}

// DeactivateAddress clears the active flag. The default flag is left as is and
// ignored by every query because they all filter on active.
func (repo *addressRepository) DeactivateAddress(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Model(&model.AddressModel{}).
		Where("id = ? AND active", id).
		Updates(map[string]any{"active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to deactivate address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

func translateAddressError(err error, msg string) error {
	if isDefaultAddressViolation(err) {
		return repository.ErrDefaultAddressConflict
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrInvalidAddress.WrapMessage("missing required address information")
	}

	return domainerrors.NewDatabaseExecuteError(err, msg)
}

// --- Mapper Functions ---

func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:            data.ID,
		UserID:        data.UserID,
		FullName:      data.FullName,
		StreetAddress: data.StreetAddress,
		AptSuite:      data.AptSuite,
		City:          data.City,
		State:         data.State,
		PostalCode:    data.PostalCode,
		Country:       data.Country,
		PhoneNumber:   data.PhoneNumber,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		IsDefault:     data.IsDefault,
		Active:        data.Active,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:            data.ID,
		UserID:        data.UserID,
		FullName:      data.FullName,
		StreetAddress: data.StreetAddress,
		AptSuite:      data.AptSuite,
		City:          data.City,
		State:         data.State,
		PostalCode:    data.PostalCode,
		Country:       data.Country,
		PhoneNumber:   data.PhoneNumber,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		IsDefault:     data.IsDefault,
		Active:        data.Active,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
