package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line. Prices are never taken from the caller.
type OrderItemInput struct {
	ProductID      uuid.UUID
	Quantity       int
	Size           string
	Color          string
	CustomerNotes  string
	DesignImageRef string
}

// CreateOrderInput defines an order placement request.
type CreateOrderInput struct {
	Items []OrderItemInput
	// ShippingAddressID falls back to the caller's default address when nil.
	ShippingAddressID *uuid.UUID
}

// OrderUsecase owns order placement, status transitions and reads.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, principal *entity.Principal, input CreateOrderInput) (*entity.Order, error)
	UpdateStatus(ctx context.Context, principal *entity.Principal, orderID uuid.UUID, status string) (*entity.Order, error)
	GetOrdersForCustomer(ctx context.Context, principal *entity.Principal) ([]*entity.Order, error)
	GetAllOrders(ctx context.Context, principal *entity.Principal) ([]*entity.Order, error)
	GetOrderByID(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error)

	// LookupByTrackingPayload resolves a scanned "ORDER:<id>" payload.
	LookupByTrackingPayload(ctx context.Context, principal *entity.Principal, payload string) (*entity.Order, error)

	// RetryTracking attaches the tracking artifact now if it is still missing.
	RetryTracking(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error)
}
