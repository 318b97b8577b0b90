package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// DesignAssetHandlerParams holds dependencies for DesignAssetHandler, injected by Fx.
type DesignAssetHandlerParams struct {
	fx.In

	DesignAssetUC usecase.DesignAssetUsecase
	Logger        *slog.Logger
}

// DesignAssetHandler serves the design studio garments.
type DesignAssetHandler struct {
	designAssetUC usecase.DesignAssetUsecase
	logger        *slog.Logger
}

// NewDesignAssetHandler is the constructor for DesignAssetHandler
func NewDesignAssetHandler(params DesignAssetHandlerParams) *DesignAssetHandler {
	return &DesignAssetHandler{
		designAssetUC: params.DesignAssetUC,
		logger:        params.Logger,
	}
}

// DesignAssetRequest is the body for creating or replacing a design asset.
// Print area values are CSS percentages such as "20%".
type DesignAssetRequest struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Type            string          `json:"type" validate:"max=100"`
	MockupImageURL  string          `json:"mockupImageUrl" validate:"max=2000"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	PrintAreaTop    string          `json:"printAreaTop" validate:"required"`
	PrintAreaLeft   string          `json:"printAreaLeft" validate:"required"`
	PrintAreaWidth  string          `json:"printAreaWidth" validate:"required"`
	PrintAreaHeight string          `json:"printAreaHeight" validate:"required"`
}

func (r *DesignAssetRequest) toInput() usecase.DesignAssetInput {
	return usecase.DesignAssetInput{
		Name:           r.Name,
		Type:           r.Type,
		MockupImageURL: r.MockupImageURL,
		BasePrice:      r.BasePrice,
		PrintArea: entity.PrintArea{
			Top:    r.PrintAreaTop,
			Left:   r.PrintAreaLeft,
			Width:  r.PrintAreaWidth,
			Height: r.PrintAreaHeight,
		},
	}
}

// ListDesignAssets handles GET /api/design-assets.
func (h *DesignAssetHandler) ListDesignAssets(c echo.Context) error {
	assets, err := h.designAssetUC.ListDesignAssets(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, mapAll(assets, toDesignAssetResponse))
}

// GetDesignAsset handles GET /api/design-assets/:id.
func (h *DesignAssetHandler) GetDesignAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	asset, err := h.designAssetUC.GetDesignAsset(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toDesignAssetResponse(asset))
}

// CreateDesignAsset handles POST /api/design-assets.
func (h *DesignAssetHandler) CreateDesignAsset(c echo.Context) error {
	var req DesignAssetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	asset, err := h.designAssetUC.CreateDesignAsset(c.Request().Context(), deliverycontext.GetPrincipal(c), req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toDesignAssetResponse(asset))
}

// UpdateDesignAsset handles PUT /api/design-assets/:id.
func (h *DesignAssetHandler) UpdateDesignAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req DesignAssetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	asset, err := h.designAssetUC.UpdateDesignAsset(c.Request().Context(), deliverycontext.GetPrincipal(c), id, req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toDesignAssetResponse(asset))
}

// DeleteDesignAsset handles DELETE /api/design-assets/:id.
func (h *DesignAssetHandler) DeleteDesignAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.designAssetUC.DeleteDesignAsset(c.Request().Context(), deliverycontext.GetPrincipal(c), id); err != nil {
		return err
	}

	return response.NoContent(c)
}
