package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/streadway/amqp"
)

const (
	EventApplicationSubmitted     = "application.submitted"
	EventApplicationStatusChanged = "application.status_changed"
	EventJobStatusChanged         = "job.status_changed"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// Event is the envelope written to the exchange.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type RabbitPublisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *log.Logger
}

// NewRabbitPublisher dials url and declares a durable topic exchange.
func NewRabbitPublisher(url, exchange string, logger *log.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitPublisher{conn: conn, exchange: exchange, logger: logger}, nil
}

func (p *RabbitPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	body, err := encode(routingKey, payload, time.Now())
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

func encode(routingKey string, payload any, now time.Time) ([]byte, error) {
	b, err := json.Marshal(Event{Type: routingKey, OccurredAt: now.UTC(), Data: payload})
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", routingKey, err)
	}
	return b, nil
}

// NopPublisher is used when RABBITMQ_URL is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }

// New returns a RabbitPublisher, or a NopPublisher when url is empty or the
// broker is unreachable.
func New(url, exchange string, logger *log.Logger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	p, err := NewRabbitPublisher(url, exchange, logger)
	if err != nil {
		if logger != nil {
			logger.Printf("[Messaging] RabbitMQ unavailable, events disabled: %v", err)
		}
		return NopPublisher{}
	}
	return p
}
