package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_ForwardFlow(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusInProduction, true},
		{OrderStatusInProduction, OrderStatusQualityCheck, true},
		{OrderStatusQualityCheck, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusHold, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusHold, false},
		{OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, "", tt.to))
		})
	}
}

func TestCanTransition_HoldResumesOnlyToPreviousStatus(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusHold, OrderStatusInProduction, OrderStatusInProduction))
	assert.True(t, CanTransition(OrderStatusHold, OrderStatusInProduction, OrderStatusCancelled))
	assert.False(t, CanTransition(OrderStatusHold, OrderStatusInProduction, OrderStatusQualityCheck))
	assert.False(t, CanTransition(OrderStatusHold, OrderStatusInProduction, OrderStatusPaid))
	assert.False(t, CanTransition(OrderStatusHold, OrderStatusInProduction, OrderStatusHold))

	// Without a recorded origin the only way out is cancellation.
	assert.Equal(t, []OrderStatus{OrderStatusCancelled}, AllowedTransitions(OrderStatusHold, ""))
}

func TestAllowedTransitions_Terminal(t *testing.T) {
	assert.Empty(t, AllowedTransitions(OrderStatusDelivered, ""))
	assert.Empty(t, AllowedTransitions(OrderStatusCancelled, ""))
	assert.Empty(t, AllowedTransitions(OrderStatus("UNKNOWN"), ""))
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus(" in_production ")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusInProduction, status)

	_, ok = ParseOrderStatus("CONFIRMED")
	assert.False(t, ok)
}
