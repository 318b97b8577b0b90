package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AddressInput carries every editable address field. On update the whole
// address is replaced and an unset IsDefault clears the default flag.
type AddressInput struct {
	FullName      string
	StreetAddress string
	AptSuite      string
	City          string
	State         string
	PostalCode    string
	Country       string
	PhoneNumber   string
	Latitude      *float64
	Longitude     *float64
	IsDefault     bool
}

// AddressUsecase manages a user's address book and its single-default rule.
type AddressUsecase interface {
	AddAddress(ctx context.Context, principal *entity.Principal, input AddressInput) (*entity.Address, error)
	UpdateAddress(ctx context.Context, principal *entity.Principal, id uuid.UUID, input AddressInput) (*entity.Address, error)
	DeleteAddress(ctx context.Context, principal *entity.Principal, id uuid.UUID) error
	ListActiveAddresses(ctx context.Context, principal *entity.Principal) ([]*entity.Address, error)
}
