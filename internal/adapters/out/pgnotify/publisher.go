// Package pgnotify carries events between service instances over PostgreSQL
// LISTEN/NOTIFY, for deployments that run without a message broker.
package pgnotify

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/core/application/events"

	"gorm.io/gorm"
)

// DefaultChannel is the NOTIFY channel used when none is configured.
const DefaultChannel = "restaurant_events"

// maxPayload is PostgreSQL's NOTIFY payload limit in bytes, minus the terminator.
const maxPayload = 7999

// Publisher implements ports.EventPublisher with pg_notify.
type Publisher struct {
	db      *gorm.DB
	channel string
	now     func() time.Time
}

func NewPublisher(db *gorm.DB, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{db: db, channel: channel, now: func() time.Time { return time.Now().UTC() }}
}

// Publish sends the encoded event. It runs outside any transaction, so the notification
// is delivered as soon as the statement finishes. Envelopes over the NOTIFY limit are
// stored in event_spills and the notification carries a reference to the row.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	body, err := events.Encode(event)
	if err != nil {
		return err
	}

	payload := string(body)
	if len(body) > maxPayload {
		if payload, err = spill(ctx, p.db, body, p.now()); err != nil {
			return fmt.Errorf("notify %s: %w", event.Type, err)
		}
	}

	if err = p.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", p.channel, payload).Error; err != nil {
		return fmt.Errorf("notify %s: %w", event.Type, err)
	}
	return nil
}
