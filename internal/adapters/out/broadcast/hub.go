// Package broadcast fans committed events out to the observers connected to this
// process.
//
// Delivery to a subscriber is in publish order. A subscriber that falls a full buffer
// behind is disconnected instead of stalling everyone else; it is expected to reconnect
// and re-fetch state through the read API.
package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"restaurant/internal/core/application/events"
)

// DefaultBuffer is the per-subscriber queue length used when none is given.
const DefaultBuffer = 64

var ErrHubClosed = errors.New("broadcast hub is closed")

// Hub is an in-memory publish/subscribe fan-out. It implements ports.EventPublisher.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*Subscription
	nextID      uint64
	buffer      int
	closed      bool
	logger      *slog.Logger
}

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subscribers: make(map[uint64]*Subscription),
		buffer:      buffer,
		logger:      logger.With("component", "broadcast_hub"),
	}
}

// Subscription is one observer's view of the stream. Events is closed when the
// subscription ends, either through Close or because the observer fell behind.
type Subscription struct {
	id     uint64
	hub    *Hub
	events chan events.Event
	once   sync.Once
}

func (s *Subscription) Events() <-chan events.Event {
	return s.events
}

// Close ends the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.drop(s)
}

// Subscribe registers a new observer.
func (h *Hub) Subscribe() (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	h.nextID++
	sub := &Subscription{
		id:     h.nextID,
		hub:    h,
		events: make(chan events.Event, h.buffer),
	}
	h.subscribers[sub.id] = sub
	return sub, nil
}

// Publish hands the event to every subscriber without blocking.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	if err := event.Type.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	for _, sub := range h.subscribers {
		select {
		case sub.events <- event:
		default:
			h.logger.WarnContext(ctx, "Dropping slow subscriber",
				"subscriber", sub.id, "event_type", string(event.Type))
			h.drop(sub)
		}
	}
	return nil
}

// Subscribers reports how many observers are connected.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber. Later Publish and Subscribe calls fail with
// ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, sub := range h.subscribers {
		h.drop(sub)
	}
}

// drop must be called with h.mu held.
func (h *Hub) drop(sub *Subscription) {
	sub.once.Do(func() {
		delete(h.subscribers, sub.id)
		close(sub.events)
	})
}
