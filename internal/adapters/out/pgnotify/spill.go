package pgnotify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// spillPrefix marks a notification whose envelope was too large for NOTIFY and was
// stored in the "event_spills" table instead. The rest of the payload is the row id.
const spillPrefix = "spill:"

// spillRetention is how long a spilled envelope stays readable. Listeners read it right
// after the notification, so anything older is garbage.
const spillRetention = time.Hour

// SpilledEventDTO is the row of the "event_spills" table.
type SpilledEventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
}

func (SpilledEventDTO) TableName() string {
	return "event_spills"
}

// Migrate creates the table that holds oversized envelopes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&SpilledEventDTO{}); err != nil {
		return fmt.Errorf("auto migrate event spills: %w", err)
	}
	return nil
}

// spill stores body and returns the notification payload that references it. Expired
// rows are pruned on the way.
func spill(ctx context.Context, db *gorm.DB, body []byte, now time.Time) (string, error) {
	row := SpilledEventDTO{ID: uuid.New(), Body: string(body), CreatedAt: now}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("created_at < ?", now.Add(-spillRetention)).Delete(&SpilledEventDTO{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return "", fmt.Errorf("spill event: %w", err)
	}
	return spillPrefix + row.ID.String(), nil
}

// unspill resolves a notification payload to the envelope it carries.
func unspill(ctx context.Context, db *gorm.DB, payload string) ([]byte, error) {
	ref, ok := strings.CutPrefix(payload, spillPrefix)
	if !ok {
		return []byte(payload), nil
	}

	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("spill reference %q: %w", ref, err)
	}

	var row SpilledEventDTO
	if err = db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, fmt.Errorf("load spilled event %s: %w", id, err)
	}
	return []byte(row.Body), nil
}
