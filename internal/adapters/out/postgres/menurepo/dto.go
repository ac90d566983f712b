// Package menurepo reads the menu catalog. Prices are numeric(12,2) columns scanned
// into exact decimals.
package menurepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemDTO is the row of the "menu_items" table.
type MenuItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:text;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Category    string          `gorm:"type:text;not null;index"`
	ImageURL    string          `gorm:"column:image_url;type:text"`
	IsAvailable bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}
