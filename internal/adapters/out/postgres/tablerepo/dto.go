// Package tablerepo persists tables. Rows are owned by the table registry; this service
// only reads them and flips their occupancy.
package tablerepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO is the row of the "tables" table.
type TableDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	QRCode    string    `gorm:"column:qr_code;type:text;not null;uniqueIndex"`
	Status    string    `gorm:"type:text;not null;default:available;index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (TableDTO) TableName() string {
	return "tables"
}

// FromDomain converts a table to its row.
func FromDomain(t *table.Table) TableDTO {
	return TableDTO{
		ID:        t.ID().Bytes(),
		QRCode:    t.QRCode(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := table.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return table.RestoreTable(id, dto.QRCode, status, dto.CreatedAt, dto.UpdatedAt)
}
