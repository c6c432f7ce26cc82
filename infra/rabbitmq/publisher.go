package rabbitmq

import (
	"catalog/pkg/events"
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	dialAttempts   = 5
	publishTimeout = 5 * time.Second
)

// Publisher implements events.Publisher on a RabbitMQ topic exchange.
type Publisher struct {
	conn    *amqp.Connection
	service string
}

var _ events.Publisher = (*Publisher)(nil)

// NewPublisher dials url, retrying with a linear backoff, and declares the
// catalog exchange.
func NewPublisher(url, service string) (*Publisher, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		zap.L().Warn("Failed to connect to RabbitMQ, retrying...",
			zap.Int("attempt", i+1),
			zap.Error(err))
		time.Sleep(time.Second * time.Duration(i+1))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ after retries: %w", err)
	}

	p := &Publisher{
		conn:    conn,
		service: service,
	}

	if err := p.declareExchange(events.CatalogExchange); err != nil {
		conn.Close()
		return nil, err
	}

	zap.L().Info("RabbitMQ publisher connected successfully",
		zap.String("exchange", events.CatalogExchange))

	return p, nil
}

func (p *Publisher) declareExchange(exchange string) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return nil
}

// Publish sends event as a persistent JSON message and waits for the broker
// to confirm it.
func (p *Publisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	if exchange != events.CatalogExchange {
		return fmt.Errorf("unknown exchange %q", exchange)
	}

	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.Timestamp,
		Headers: amqp.Table{
			"x-trace-id":       headers.TraceID,
			"x-correlation-id": headers.CorrelationID,
			"x-service":        p.service,
		},
	}

	routingKey := event.GetRoutingKey()

	// Each publish gets its own confirm-mode channel; amqp channels are not
	// safe for concurrent publishers.
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to create publish channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("failed to enable confirms: %w", err)
	}

	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := ch.PublishWithContext(publishCtx, exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	select {
	case confirm := <-confirms:
		if !confirm.Ack {
			return errors.New("message was not acknowledged by broker")
		}
	case <-publishCtx.Done():
		return errors.New("publish confirmation timeout")
	}

	zap.L().Debug("Event published",
		zap.String("exchange", exchange),
		zap.String("routingKey", routingKey),
		zap.String("correlationId", headers.CorrelationID),
	)

	return nil
}

// IsHealthy reports whether the broker connection is still open.
func (p *Publisher) IsHealthy() bool {
	return p != nil && p.conn != nil && !p.conn.IsClosed()
}

func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Close(); err != nil {
		zap.L().Error("Failed to close connection", zap.Error(err))
		return err
	}
	zap.L().Info("RabbitMQ publisher closed")
	return nil
}
