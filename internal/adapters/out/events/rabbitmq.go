// Package events delivers committed cargo lifecycle events, either to a
// RabbitMQ topic exchange or, without a broker, to the log.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Message is the JSON body of every published event.
type Message struct {
	EventType     string    `json:"eventType"`
	CargoID       string    `json:"cargoId"`
	DistributorID string    `json:"distributorId"`
	DriverID      string    `json:"driverId,omitempty"`
	Code          string    `json:"verificationCode,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// RoutingKey addresses an event to the distributor that owns the cargo, e.g.
// distributor.<id>.cargo.taken.
func RoutingKey(event ports.CargoEvent) string {
	return fmt.Sprintf("distributor.%s.%s", event.DistributorID.String(), event.Type)
}

func newMessage(event ports.CargoEvent) Message {
	msg := Message{
		EventType:     string(event.Type),
		CargoID:       event.CargoID.String(),
		DistributorID: event.DistributorID.String(),
		Code:          event.Code,
		OccurredAt:    event.OccurredAt.UTC(),
	}
	if event.DriverID != nil {
		msg.DriverID = event.DriverID.String()
	}
	return msg
}

// RabbitMQPublisher publishes to a durable topic exchange. An AMQP channel is
// not safe for concurrent publishing, so Publish serialises on mu.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *slog.Logger
	mu       sync.Mutex
}

// DialRabbitMQ connects to url and declares the exchange.
func DialRabbitMQ(url, exchange string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := newRabbitMQPublisher(ch, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newRabbitMQPublisher(ch channel, exchange string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With("component", "RabbitMQPublisher", "exchange", exchange),
	}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event ports.CargoEvent) error {
	body, err := json.Marshal(newMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	routingKey := RoutingKey(event)

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.CargoID.String() + ":" + string(event.Type),
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt.UTC(),
		Body:         body,
	})
	p.mu.Unlock()
	if err != nil {
		return errs.NewUnavailableError("publish "+string(event.Type), err)
	}

	p.logger.DebugContext(ctx, "event published",
		"routing_key", routingKey,
		"cargo_id", event.CargoID.String(),
	)
	return nil
}

// Close closes the channel and, when the publisher dialled it, the connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		return fmt.Errorf("failed to close channel: %w", err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return nil
}
