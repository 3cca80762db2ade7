package persistence

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/config"
)

const (
	// ExchangeName is the topic exchange registration notifications go to.
	ExchangeName = "events"
	ExchangeKind = "topic"
)

// RabbitMQ wraps an AMQP connection and a single publishing channel.
type RabbitMQ struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitMQ dials the broker and declares the exchange. An empty URL
// yields a disabled client.
func NewRabbitMQ(cfg config.RabbitMQConfig, logger *zap.Logger) (*RabbitMQ, error) {
	if cfg.URL == "" {
		logger.Info("RABBITMQ_URL not provided; broker notifications disabled")
		return &RabbitMQ{}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	logger.Info("connected to rabbitmq", zap.String("exchange", ExchangeName))
	return &RabbitMQ{conn: conn, channel: ch}, nil
}

// Enabled reports whether a broker connection was configured.
func (r *RabbitMQ) Enabled() bool {
	return r != nil && r.channel != nil
}

// Publish sends a JSON payload to the exchange under routingKey.
func (r *RabbitMQ) Publish(ctx context.Context, routingKey string, payload []byte) error {
	if !r.Enabled() {
		return ErrNotConfigured
	}

	// amqp channels are not safe for concurrent publishing.
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.channel.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         payload,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Ping reports whether the broker connection is still open.
func (r *RabbitMQ) Ping(_ context.Context) error {
	if !r.Enabled() {
		return ErrNotConfigured
	}
	if r.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

// Close closes the channel and the connection.
func (r *RabbitMQ) Close() {
	if r == nil {
		return
	}
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}
