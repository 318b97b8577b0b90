package entity

import (
	"slices"
	"strings"
)

// OrderStatus is a step of the fulfillment workflow.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "PENDING"
	OrderStatusPaid         OrderStatus = "PAID"
	OrderStatusInProduction OrderStatus = "IN_PRODUCTION"
	OrderStatusQualityCheck OrderStatus = "QUALITY_CHECK"
	OrderStatusShipped      OrderStatus = "SHIPPED"
	OrderStatusDelivered    OrderStatus = "DELIVERED"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
	OrderStatusHold         OrderStatus = "HOLD"
)

// forwardFlow maps each production status to the only status that may follow it.
var forwardFlow = map[OrderStatus]OrderStatus{
	OrderStatusPending:      OrderStatusPaid,
	OrderStatusPaid:         OrderStatusInProduction,
	OrderStatusInProduction: OrderStatusQualityCheck,
	OrderStatusQualityCheck: OrderStatusShipped,
	OrderStatusShipped:      OrderStatusDelivered,
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusInProduction, OrderStatusQualityCheck,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusHold:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus normalizes a status token such as "in_production".
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))

	return status, status.IsValid()
}

// AllowedTransitions lists the statuses reachable from current. heldFrom is the
// status an order occupied before entering HOLD and is only consulted for HOLD.
func AllowedTransitions(current, heldFrom OrderStatus) []OrderStatus {
	if current.IsTerminal() || !current.IsValid() {
		return nil
	}

	if current == OrderStatusHold {
		allowed := make([]OrderStatus, 0, 2)
		if heldFrom.IsValid() && !heldFrom.IsTerminal() && heldFrom != OrderStatusHold {
			allowed = append(allowed, heldFrom)
		}

		return append(allowed, OrderStatusCancelled)
	}

	allowed := make([]OrderStatus, 0, 3)
	if next, ok := forwardFlow[current]; ok {
		allowed = append(allowed, next)
	}

	return append(allowed, OrderStatusCancelled, OrderStatusHold)
}

// CanTransition reports whether next is reachable from current.
func CanTransition(current, heldFrom, next OrderStatus) bool {
	return slices.Contains(AllowedTransitions(current, heldFrom), next)
}
