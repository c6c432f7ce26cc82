package events

import (
	"context"

	"go.uber.org/zap"
)

// Publisher defines the interface for publishing domain events
type Publisher interface {
	// Publish publishes an event to the message broker
	Publish(ctx context.Context, exchange string, event *Event, headers Headers) error

	// Close closes the publisher connection
	Close() error
}

// Emit builds an event for name and publishes it to the catalog exchange.
// A nil publisher is a no-op; failures are logged and swallowed.
func Emit(ctx context.Context, publisher Publisher, name string, payload interface{}) {
	if publisher == nil {
		return
	}

	headers := NewHeaders(ctx)
	event := NewEvent(name, EventVersionV1, payload, headers)

	if err := publisher.Publish(ctx, CatalogExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish event",
			zap.String("event", name),
			zap.String("correlationId", headers.CorrelationID),
			zap.Error(err),
		)
	}
}
