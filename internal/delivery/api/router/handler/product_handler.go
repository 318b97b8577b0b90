package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the catalog.
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ProductRequest is the body for creating or replacing a product.
type ProductRequest struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Description     string          `json:"description" validate:"max=4000"`
	Category        string          `json:"category" validate:"max=100"`
	Images          []string        `json:"images" validate:"omitempty,dive,url"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	AvailableSizes  []string        `json:"availableSizes" validate:"omitempty,dive,required"`
	AvailableColors []string        `json:"availableColors" validate:"omitempty,dive,required"`
	StockQuantity   int             `json:"stockQuantity" validate:"gte=0"`
	Active          *bool           `json:"active"`
}

func (r *ProductRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Images:          r.Images,
		BasePrice:       r.BasePrice,
		AvailableSizes:  r.AvailableSizes,
		AvailableColors: r.AvailableColors,
		StockQuantity:   r.StockQuantity,
		Active:          r.Active,
	}
}

// ListProducts handles GET /api/products?category=.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUC.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, mapAll(products, toProductResponse))
}

// GetProduct handles GET /api/products/:id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// CreateProduct handles POST /api/products.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), deliverycontext.GetPrincipal(c), req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product))
}

// UpdateProduct handles PUT /api/products/:id.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), deliverycontext.GetPrincipal(c), id, req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// DeleteProduct handles DELETE /api/products/:id as a soft deactivation.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeactivateProduct(c.Request().Context(), deliverycontext.GetPrincipal(c), id); err != nil {
		return err
	}

	return response.NoContent(c)
}
