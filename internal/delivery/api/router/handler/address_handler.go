package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AddressHandlerParams holds dependencies for AddressHandler, injected by Fx.
type AddressHandlerParams struct {
	fx.In

	AddressUC usecase.AddressUsecase
	Logger    *slog.Logger
}

// AddressHandler serves the caller's address book.
type AddressHandler struct {
	addressUC usecase.AddressUsecase
	logger    *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler
func NewAddressHandler(params AddressHandlerParams) *AddressHandler {
	return &AddressHandler{
		addressUC: params.AddressUC,
		logger:    params.Logger,
	}
}

// AddressRequest carries the full address. Omitting isDefault on update clears the flag.
type AddressRequest struct {
	FullName      string   `json:"fullName" validate:"required,max=200"`
	StreetAddress string   `json:"streetAddress" validate:"required,max=300"`
	AptSuite      string   `json:"aptSuite" validate:"max=100"`
	City          string   `json:"city" validate:"required,max=100"`
	State         string   `json:"state" validate:"max=100"`
	PostalCode    string   `json:"postalCode" validate:"required,max=20"`
	Country       string   `json:"country" validate:"required,max=100"`
	PhoneNumber   string   `json:"phoneNumber" validate:"required,max=30"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,longitude"`
	IsDefault     bool     `json:"isDefault"`
}

func (r *AddressRequest) toInput() usecase.AddressInput {
	return usecase.AddressInput{
		FullName:      r.FullName,
		StreetAddress: r.StreetAddress,
		AptSuite:      r.AptSuite,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		PhoneNumber:   r.PhoneNumber,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		IsDefault:     r.IsDefault,
	}
}

// ListAddresses handles GET /api/addresses.
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	addresses, err := h.addressUC.ListActiveAddresses(c.Request().Context(), deliverycontext.GetPrincipal(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, mapAll(addresses, toAddressResponse))
}

// CreateAddress handles POST /api/addresses.
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	var req AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressUC.AddAddress(c.Request().Context(), deliverycontext.GetPrincipal(c), req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toAddressResponse(address))
}

// UpdateAddress handles PUT /api/addresses/:id.
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressUC.UpdateAddress(c.Request().Context(), deliverycontext.GetPrincipal(c), id, req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAddressResponse(address))
}

// DeleteAddress handles DELETE /api/addresses/:id.
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.addressUC.DeleteAddress(c.Request().Context(), deliverycontext.GetPrincipal(c), id); err != nil {
		return err
	}

	return response.NoContent(c)
}
