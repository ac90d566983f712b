package queries

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return OrderReadModel{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).Table("orders").
		Select("id, table_id, status, total_amount, created_at, updated_at").
		Where("id = ?", query.OrderID().Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderReadModel{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderReadModel{}, fmt.Errorf("get order: %w", err)
	}

	items, err := loadItems(ctx, h.db, []uuid.UUID{row.ID})
	if err != nil {
		return OrderReadModel{}, err
	}

	return row.toReadModel(items[row.ID])
}
