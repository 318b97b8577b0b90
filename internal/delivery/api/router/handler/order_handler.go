package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves order placement, reads and fulfillment transitions.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderItemRequest is one requested line. Prices are taken from the catalog.
type OrderItemRequest struct {
	ProductID      uuid.UUID `json:"productId" validate:"required"`
	Quantity       int       `json:"quantity" validate:"gt=0"`
	Size           string    `json:"size" validate:"max=20"`
	Color          string    `json:"color" validate:"max=40"`
	CustomerNotes  string    `json:"customerNotes" validate:"max=1000"`
	DesignImageRef string    `json:"designImageRef" validate:"max=500"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	Items             []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddressID *uuid.UUID         `json:"shippingAddressId"`
}

// UpdateStatusRequest is the body of PUT /api/orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			Size:           it.Size,
			Color:          it.Color,
			CustomerNotes:  it.CustomerNotes,
			DesignImageRef: it.DesignImageRef,
		})
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), deliverycontext.GetPrincipal(c), usecase.CreateOrderInput{
		Items:             items,
		ShippingAddressID: req.ShippingAddressID,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order))
}

// ListMyOrders handles GET /api/orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	orders, err := h.orderUC.GetOrdersForCustomer(c.Request().Context(), deliverycontext.GetPrincipal(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, mapAll(orders, toOrderResponse))
}

// ListAllOrders handles GET /api/orders/all.
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.orderUC.GetAllOrders(c.Request().Context(), deliverycontext.GetPrincipal(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, mapAll(orders, toOrderResponse))
}

// GetOrder handles GET /api/orders/:id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.GetOrderByID(c.Request().Context(), deliverycontext.GetPrincipal(c), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), deliverycontext.GetPrincipal(c), id, req.Status)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// LookupTracking handles GET /api/orders/tracking?payload=ORDER:<id>.
func (h *OrderHandler) LookupTracking(c echo.Context) error {
	order, err := h.orderUC.LookupByTrackingPayload(c.Request().Context(), deliverycontext.GetPrincipal(c), c.QueryParam("payload"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// RetryTracking handles POST /api/orders/:id/tracking.
func (h *OrderHandler) RetryTracking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.RetryTracking(c.Request().Context(), deliverycontext.GetPrincipal(c), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}
