package menurepo

import (
	"context"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMenuRepository implements ports.MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Add inserts a menu item. Used by seeding and tests; the catalog owns production edits.
func (r *GormMenuRepository) Add(ctx context.Context, item *menu.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := MenuItemDTO{
		ID:          item.ID().Bytes(),
		Name:        item.Name(),
		Description: item.Description(),
		Price:       item.Price().Decimal(),
		Category:    item.Category(),
		IsAvailable: item.IsAvailable(),
	}
	return pgerr.Classify("insert menu item", r.db.WithContext(ctx).Create(&dto).Error)
}

type priceRow struct {
	ID    uuid.UUID
	Price decimal.Decimal
}

// GetPrices reads the current price of every known item among ids in one query.
// Rows are read in the caller's transaction, so they are consistent with the order
// being created.
func (r *GormMenuRepository) GetPrices(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]kernel.Money, error) {
	prices := make(map[kernel.UUID]kernel.Money, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var rows []priceRow
	err := r.db.WithContext(ctx).Model(&MenuItemDTO{}).
		Select("id", "price").
		Where("id IN ?", raw).
		Scan(&rows).Error
	if err != nil {
		return nil, pgerr.Classify("get menu prices", err)
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(row.Price)
		if err != nil {
			return nil, err
		}
		prices[id] = price
	}

	return prices, nil
}
