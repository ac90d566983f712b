package ports

import (
	"context"

	"restaurant/internal/core/application/events"
)

// EventPublisher fans committed events out to observers.
//
// Delivery is best effort and at least once. Implementations must be safe for concurrent
// use. A returned error is reported by the caller and never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
