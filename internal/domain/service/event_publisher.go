package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// EventPublisher defines the interface for publishing domain events to a message queue
type EventPublisher interface {
	// PublishOrderStatusChanged hands a status change to the external notifier.
	PublishOrderStatusChanged(ctx context.Context, event *entity.OrderStatusChanged) error

	// Close releases any resources held by the publisher
	Close() error
}
