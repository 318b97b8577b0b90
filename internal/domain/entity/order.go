package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrackingPayloadPrefix marks a scanned tracking payload as an order reference.
const TrackingPayloadPrefix = "ORDER:"

// OrderItem is one line of an order. Name and price are snapshots taken at placement.
type OrderItem struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	ProductName    string          // Snapshot of the product name.
	Quantity       int             // Always greater than zero.
	UnitPrice      decimal.Decimal // Snapshot of the product price, never recomputed.
	Size           string
	Color          string
	CustomerNotes  string
	DesignImageRef string // Optional reference to an uploaded design.
}

// Subtotal returns quantity times unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a customer's placed order. Orders are never deleted.
type Order struct {
	ID                uuid.UUID
	CustomerID        uuid.UUID
	CustomerEmail     string
	TenantID          uuid.UUID // Copied from the customer at creation.
	ShippingAddressID *uuid.UUID
	Items             []OrderItem
	TotalAmount       decimal.Decimal // Sum of item subtotals at creation.
	Status            OrderStatus
	HeldFrom          *OrderStatus // Status the order left when put on HOLD.
	TrackingTokenURL  *string      // Nil until tracking is attached.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SumItems computes the exact total of the given items.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// HasTracking reports whether a tracking artifact is attached.
func (o *Order) HasTracking() bool {
	return o.TrackingTokenURL != nil && *o.TrackingTokenURL != ""
}

// HeldFromStatus returns the pre-HOLD status or an empty status.
func (o *Order) HeldFromStatus() OrderStatus {
	if o.HeldFrom == nil {
		return ""
	}

	return *o.HeldFrom
}

// TrackingPayload returns the payload encoded into the order's tracking artifact.
func TrackingPayload(orderID uuid.UUID) string {
	return TrackingPayloadPrefix + orderID.String()
}

// ParseTrackingPayload extracts the order id from a scanned payload.
func ParseTrackingPayload(payload string) (uuid.UUID, bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(payload), TrackingPayloadPrefix)
	if !found {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// OrderStatusChanged is published after a successful status transition.
type OrderStatusChanged struct {
	RequestID     string      `json:"requestId,omitempty"` // For distributed tracing
	OrderID       uuid.UUID   `json:"orderId"`
	CustomerID    uuid.UUID   `json:"customerId"`
	CustomerEmail string      `json:"customerEmail"`
	TenantID      uuid.UUID   `json:"tenantId"`
	From          OrderStatus `json:"from"`
	To            OrderStatus `json:"to"`
	ChangedBy     uuid.UUID   `json:"changedBy"`
	ChangedAt     time.Time   `json:"changedAt"`
}
