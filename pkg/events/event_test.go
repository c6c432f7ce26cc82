package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	exchange string
	events   []*Event
	headers  []Headers
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, exchange string, event *Event, headers Headers) error {
	p.exchange = exchange
	p.events = append(p.events, event)
	p.headers = append(p.headers, headers)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestEventRoutingKeyAndJSON(t *testing.T) {
	event := NewEvent(ProductCreatedEvent, EventVersionV1, ProductPayload{ID: "p1"}, Headers{TraceID: "t", CorrelationID: "c"})

	assert.Equal(t, "product.created.v1", event.GetRoutingKey())

	body, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "product.created", decoded["event"])
	assert.Equal(t, "t", decoded["traceId"])
	assert.Equal(t, "c", decoded["correlationId"])
}

func TestNewHeadersUsesCorrelationIDFromContext(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-123")

	headers := NewHeaders(ctx)

	assert.Equal(t, "req-123", headers.CorrelationID)
	assert.Equal(t, "catalog", headers.Service)
	assert.NotEmpty(t, headers.TraceID)
}

func TestNewHeadersGeneratesCorrelationID(t *testing.T) {
	headers := NewHeaders(context.Background())

	assert.NotEmpty(t, headers.CorrelationID)
}

func TestEmit(t *testing.T) {
	t.Run("nil publisher is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Emit(context.Background(), nil, CategoryCreatedEvent, CategoryPayload{})
		})
	})

	t.Run("publishes to the catalog exchange", func(t *testing.T) {
		publisher := &recordingPublisher{}

		Emit(context.Background(), publisher, CategoryDeletedEvent, CategoryDeletedPayload{ID: "c1", ProductsDeleted: 2})

		require.Len(t, publisher.events, 1)
		assert.Equal(t, CatalogExchange, publisher.exchange)
		assert.Equal(t, "category.deleted.v1", publisher.events[0].GetRoutingKey())
		assert.Equal(t, publisher.headers[0].CorrelationID, publisher.events[0].CorrelationID)
	})

	t.Run("publish failure is swallowed", func(t *testing.T) {
		publisher := &recordingPublisher{err: errors.New("broker down")}

		assert.NotPanics(t, func() {
			Emit(context.Background(), publisher, ProductDeletedEvent, ProductDeletedPayload{ID: "p1"})
		})
		assert.Len(t, publisher.events, 1)
	})
}
