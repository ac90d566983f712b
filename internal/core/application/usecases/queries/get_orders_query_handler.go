package queries

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle returns the matching orders with their items. The result is never nil.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("orders").
		Select("id, table_id, status, total_amount, created_at, updated_at").
		Order("created_at, id")
	if query.ActiveOnly() {
		db = db.Where("status IN ?", statusNames(order.ActiveStatuses()))
	}

	var rows []orderRow
	if err := db.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	items, err := loadItems(ctx, h.db, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]OrderReadModel, 0, len(rows))
	for _, row := range rows {
		model, err := row.toReadModel(items[row.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, model)
	}
	return orders, nil
}

type orderRow struct {
	ID          uuid.UUID
	TableID     uuid.UUID
	Status      string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r orderRow) toReadModel(items []OrderItemReadModel) (OrderReadModel, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderReadModel{}, err
	}
	tableID, err := kernel.UUIDFromBytes(r.TableID[:])
	if err != nil {
		return OrderReadModel{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderReadModel{}, err
	}
	total, err := kernel.NewMoney(r.TotalAmount)
	if err != nil {
		return OrderReadModel{}, err
	}

	if items == nil {
		items = make([]OrderItemReadModel, 0)
	}

	return OrderReadModel{
		ID:          id,
		TableID:     tableID,
		Status:      status,
		TotalAmount: total,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Items:       items,
	}, nil
}

type orderItemRow struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	MenuItemID   uuid.UUID
	MenuItemName string
	Quantity     int
	Price        decimal.Decimal
	Notes        *string
}

// loadItems fetches the lines of every order in ids, grouped by order.
func loadItems(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID][]OrderItemReadModel, error) {
	grouped := make(map[uuid.UUID][]OrderItemReadModel, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	var rows []orderItemRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			oi.id,
			oi.order_id,
			oi.menu_item_id,
			mi.name AS menu_item_name,
			oi.quantity,
			oi.price,
			oi.notes
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id IN ?
		ORDER BY oi.order_id, oi.position
	`, ids).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		menuItemID, err := kernel.UUIDFromBytes(row.MenuItemID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(row.Price)
		if err != nil {
			return nil, err
		}

		var note string
		if row.Notes != nil {
			note = *row.Notes
		}

		grouped[row.OrderID] = append(grouped[row.OrderID], OrderItemReadModel{
			ID:           id,
			MenuItemID:   menuItemID,
			MenuItemName: row.MenuItemName,
			Quantity:     row.Quantity,
			Price:        price,
			Note:         note,
		})
	}
	return grouped, nil
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
