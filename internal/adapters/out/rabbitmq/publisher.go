// Package rabbitmq carries events between service instances over a topic exchange.
//
// Publisher sends every committed event to the exchange with the event type as routing
// key. Relay consumes from a private, auto-deleted queue bound to "#" and hands each
// event to a local sink (the broadcast hub), so observers connected to any instance see
// the events of every instance.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant/internal/core/application/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange used when none is configured.
const DefaultExchange = "restaurant.events"

const (
	publishTimeout = 5 * time.Second
	confirmBuffer  = 16
)

var (
	ErrPublishNotConfirmed = errors.New("broker did not confirm the event")
	ErrPublisherClosed     = errors.New("rabbitmq publisher is closed")
)

func declareExchange(ch *amqp.Channel, exchange string) error {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return nil
}

// Publisher implements ports.EventPublisher with publisher confirms. Publish calls are
// serialised on one channel and each confirmation is matched by delivery tag, so a late
// ack for a timed-out message is never taken for the next one.
type Publisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	confirms chan amqp.Confirmation
	exchange string
	closed   bool
}

func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = declareExchange(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	return &Publisher{
		ch:       ch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer)),
		exchange: exchange,
	}, nil
}

// Publish sends the event and waits for the broker's ack.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	body, err := events.Encode(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	tag := p.ch.GetNextPublishSeqNo()
	err = p.ch.PublishWithContext(ctx,
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Transient,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	if err = awaitConfirm(ctx, p.confirms, tag); err != nil {
		return fmt.Errorf("%s: %w", event.Type, err)
	}
	return nil
}

// awaitConfirm waits for the confirmation of delivery tag. Confirmations for earlier
// tags belong to messages whose wait already timed out and are dropped.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, tag uint64) error {
	for {
		select {
		case confirm, ok := <-confirms:
			if !ok {
				return ErrPublisherClosed
			}
			if confirm.DeliveryTag < tag {
				continue
			}
			if !confirm.Ack {
				return ErrPublishNotConfirmed
			}
			return nil
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrPublishNotConfirmed, ctx.Err())
		}
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.ch.Close()
}
