package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/statistics"
	"restaurant/internal/core/domain/model/table"
)

// Type names an event kind on every transport.
type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusUpdated Type = "order.statusUpdated"
	TableStatusUpdated Type = "table.statusUpdated"
	StatisticsUpdated  Type = "statistics.updated"
)

// ErrUnknownEventType is returned when decoding an envelope of a kind this service does
// not publish.
var ErrUnknownEventType = errors.New("unknown event type")

// Types lists every event kind.
func Types() []Type {
	return []Type{OrderCreated, OrderStatusUpdated, TableStatusUpdated, StatisticsUpdated}
}

func (t Type) Validate() error {
	for _, known := range Types() {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownEventType, string(t))
}

// Event is a committed change ready to be fanned out to observers.
//
// Payload is one of the *Payload structs of this package when the event was built
// locally, or a json.RawMessage when it was decoded from a broker.
type Event struct {
	Type       Type
	Payload    any
	OccurredAt time.Time
}

type envelope struct {
	Type       Type            `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// Encode renders the event as the JSON envelope shared by every broker back-end.
func Encode(e Event) ([]byte, error) {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", e.Type, err)
	}
	return json.Marshal(envelope{Type: e.Type, Payload: payload, OccurredAt: e.OccurredAt})
}

// Decode parses an envelope produced by Encode. The payload is kept as raw JSON.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{}, fmt.Errorf("decode event envelope: %w", err)
	}
	if err := env.Type.Validate(); err != nil {
		return Event{}, err
	}
	return Event{Type: env.Type, Payload: env.Payload, OccurredAt: env.OccurredAt}, nil
}

// NewOrderCreated builds order.created for a freshly committed order.
func NewOrderCreated(o *order.Order, now time.Time) Event {
	view := NewOrderView(o)
	return Event{
		Type:       OrderCreated,
		Payload:    OrderCreatedPayload{Order: view, Items: view.Items},
		OccurredAt: now,
	}
}

// NewOrderStatusUpdated builds order.statusUpdated after a committed transition.
func NewOrderStatusUpdated(o *order.Order, previous order.Status, now time.Time) Event {
	return Event{
		Type:       OrderStatusUpdated,
		Payload:    OrderStatusUpdatedPayload{Order: NewOrderView(o), PreviousStatus: previous.String()},
		OccurredAt: now,
	}
}

// NewTableStatusUpdated builds table.statusUpdated after a committed occupancy change.
func NewTableStatusUpdated(t *table.Table, now time.Time) Event {
	return Event{
		Type:       TableStatusUpdated,
		Payload:    TableStatusUpdatedPayload{Table: NewTableView(t)},
		OccurredAt: now,
	}
}

// NewStatisticsUpdated builds statistics.updated from a freshly computed snapshot.
func NewStatisticsUpdated(s statistics.Snapshot, now time.Time) Event {
	return Event{
		Type:       StatisticsUpdated,
		Payload:    StatisticsUpdatedPayload{Snapshot: NewStatisticsView(s)},
		OccurredAt: now,
	}
}
