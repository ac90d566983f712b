package queries

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetMenuItemsQueryHandler struct {
	db *gorm.DB
}

func NewGetMenuItemsQueryHandler(db *gorm.DB) GetMenuItemsQueryHandler {
	return GetMenuItemsQueryHandler{db: db}
}

type menuItemRow struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	IsAvailable bool
}

// Handle returns menu items ordered by category, then name.
func (h GetMenuItemsQueryHandler) Handle(ctx context.Context, query GetMenuItemsQuery) ([]MenuItemReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("menu_items").
		Select("id, name, description, price, category, image_url, is_available").
		Order("category, name")
	if query.AvailableOnly() {
		db = db.Where("is_available")
	}

	var rows []menuItemRow
	if err := db.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	items := make([]MenuItemReadModel, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(row.Price)
		if err != nil {
			return nil, err
		}

		items = append(items, MenuItemReadModel{
			ID:          id,
			Name:        row.Name,
			Description: row.Description,
			Price:       price,
			Category:    row.Category,
			ImageURL:    row.ImageURL,
			IsAvailable: row.IsAvailable,
		})
	}
	return items, nil
}
