package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the consumer.
var ErrDeliveriesClosed = errors.New("rabbitmq deliveries channel closed")

// Relay moves events from the exchange into a local publisher.
type Relay struct {
	conn     *amqp.Connection
	exchange string
	sink     ports.EventPublisher
	logger   *slog.Logger
}

func NewRelay(conn *amqp.Connection, exchange string, sink ports.EventPublisher, logger *slog.Logger) *Relay {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Relay{
		conn:     conn,
		exchange: exchange,
		sink:     sink,
		logger:   logger.With("component", "rabbitmq_relay"),
	}
}

// Run consumes until ctx is done. It returns nil on cancellation.
func (r *Relay) Run(ctx context.Context) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err = declareExchange(ch, r.exchange); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare relay queue: %w", err)
	}

	if err = ch.QueueBind(q.Name, "#", r.exchange, false, nil); err != nil {
		return fmt.Errorf("bind relay queue: %w", err)
	}

	deliveries, err := ch.Consume(
		q.Name, // queue
		"",     // consumer tag
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // arguments
	)
	if err != nil {
		return fmt.Errorf("consume relay queue: %w", err)
	}

	r.logger.InfoContext(ctx, "Relay started", "exchange", r.exchange, "queue", q.Name)

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Relay stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			r.handle(ctx, d.Body)
		}
	}
}

func (r *Relay) handle(ctx context.Context, body []byte) {
	event, err := events.Decode(body)
	if err != nil {
		r.logger.WarnContext(ctx, "Skipping undecodable message", "error", err)
		return
	}

	if err = r.sink.Publish(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "Failed to relay event", "event_type", string(event.Type), "error", err)
	}
}
