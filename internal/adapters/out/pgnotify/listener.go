package pgnotify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener relays NOTIFY messages into a local publisher. It keeps its own connection
// and reconnects on its own; notifications sent while disconnected are lost, which
// observers recover from through the read API. Spilled envelopes are loaded through db.
type Listener struct {
	db      *gorm.DB
	dsn     string
	channel string
	sink    ports.EventPublisher
	logger  *slog.Logger
}

func NewListener(db *gorm.DB, dsn, channel string, sink ports.EventPublisher, logger *slog.Logger) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Listener{
		db:      db,
		dsn:     dsn,
		channel: channel,
		sink:    sink,
		logger:  logger.With("component", "pgnotify_listener"),
	}
}

// Run listens until ctx is done. It returns nil on cancellation.
func (l *Listener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				l.logger.WarnContext(ctx, "Listener connection event", "event", int(ev), "error", err)
			}
		})
	defer func() { _ = listener.Close() }()

	if err := listener.Listen(l.channel); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}

	l.logger.InfoContext(ctx, "Listener started", "channel", l.channel)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.InfoContext(ctx, "Listener stopped")
			return nil
		case n := <-listener.Notify:
			// nil after a reconnect
			if n == nil {
				continue
			}
			l.handle(ctx, n.Extra)
		case <-ticker.C:
			go func() { _ = listener.Ping() }()
		}
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	body, err := unspill(ctx, l.db, payload)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to load spilled notification", "error", err)
		return
	}

	event, err := events.Decode(body)
	if err != nil {
		l.logger.WarnContext(ctx, "Skipping undecodable notification", "error", err)
		return
	}

	if err = l.sink.Publish(ctx, event); err != nil {
		l.logger.ErrorContext(ctx, "Failed to relay event", "event_type", string(event.Type), "error", err)
	}
}
