package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderStatusMismatch is returned when a conditional status update finds a different current status.
	ErrOrderStatusMismatch = errors.New("order status changed concurrently")
)

// StatusChange describes a compare-and-set status update.
type StatusChange struct {
	OrderID  uuid.UUID
	From     entity.OrderStatus  // Status the row must still have.
	To       entity.OrderStatus
	HeldFrom *entity.OrderStatus // New value of the pre-HOLD marker; nil clears it.
	At       time.Time
}

// OrderRepository defines order persistence. Orders are never deleted.
type OrderRepository interface {
	// Create persists the order together with all of its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByCustomer retrieves a customer's orders, newest first.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)

	// FindAll retrieves every order, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus applies the change only if the stored status still equals change.From.
	// Returns ErrOrderStatusMismatch when it does not, ErrOrderNotFound when the order is absent.
	UpdateStatus(ctx context.Context, change StatusChange) error

	// AttachTrackingURL sets the tracking reference without touching any other column.
	AttachTrackingURL(ctx context.Context, id uuid.UUID, url string) error

	// FindMissingTracking returns up to limit orders created before the cutoff whose
	// tracking reference is still unset, oldest first.
	FindMissingTracking(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Order, error)
}
