package commands

import (
	"context"
	"log/slog"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/ports"
)

// StatisticsRefresher recomputes the statistics snapshot and publishes statistics.updated.
type StatisticsRefresher interface {
	Refresh(ctx context.Context) error
}

// notifier runs after a successful commit. Nothing it does can fail the command: the
// change is already durable, so errors are only logged.
type notifier struct {
	publisher  ports.EventPublisher
	statistics StatisticsRefresher
	logger     *slog.Logger
}

func (n notifier) afterCommit(ctx context.Context, published ...events.Event) {
	// The caller may already have gone away. Observers must still hear about the commit.
	ctx = context.WithoutCancel(ctx)

	for _, event := range published {
		if err := n.publisher.Publish(ctx, event); err != nil {
			n.logger.ErrorContext(ctx, "Failed to publish event",
				"event_type", string(event.Type), "error", err)
		}
	}

	if n.statistics == nil {
		return
	}
	if err := n.statistics.Refresh(ctx); err != nil {
		n.logger.ErrorContext(ctx, "Failed to refresh statistics", "error", err)
	}
}
