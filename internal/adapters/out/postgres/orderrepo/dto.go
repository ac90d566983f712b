// Package orderrepo persists order aggregates: one "orders" row and its "order_items"
// rows, written together and deleted together. Menu items referenced by an order
// cannot be deleted.
package orderrepo

import (
	"time"

	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the "orders" table. Deleting a table deletes its orders, and
// deleting an order deletes its items.
type OrderDTO struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TableID     uuid.UUID           `gorm:"type:uuid;not null;index:idx_orders_table_status,priority:1"`
	Table       *tablerepo.TableDTO `gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE"`
	Status      string              `gorm:"type:text;not null;default:pending;index:idx_orders_table_status,priority:2"`
	TotalAmount decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time           `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time           `gorm:"not null;autoUpdateTime:false"`
	Items       []OrderItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is the row of the "order_items" table. Price is the unit price copied
// from the menu when the order was created.
type OrderItemDTO struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID             `gorm:"type:uuid;not null;index"`
	MenuItem   *menurepo.MenuItemDTO `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT"`
	Position   int                   `gorm:"not null"`
	Quantity   int                   `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	Price      decimal.Decimal       `gorm:"type:numeric(12,2);not null"`
	Notes      *string               `gorm:"type:text"`
	CreatedAt  time.Time             `gorm:"not null;autoCreateTime:false"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its rows.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := o.Items()
	dtos := make([]OrderItemDTO, 0, len(items))

	for idx, item := range items {
		var notes *string
		if note := item.Note(); note != "" {
			notes = &note
		}

		dtos = append(dtos, OrderItemDTO{
			ID:         item.ID().Bytes(),
			OrderID:    orderID,
			MenuItemID: item.MenuItemID().Bytes(),
			Position:   idx,
			Quantity:   item.Quantity(),
			Price:      item.Price().Decimal(),
			Notes:      notes,
			CreatedAt:  o.CreatedAt(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		TableID:     o.TableID().Bytes(),
		Status:      o.Status().String(),
		TotalAmount: o.Total().Decimal(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Items:       dtos,
	}
}

// toDomain rebuilds the aggregate. Items must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, tableID, status, total, items, dto.CreatedAt, dto.UpdatedAt)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	var note string
	if dto.Notes != nil {
		note = *dto.Notes
	}

	return order.NewItem(id, menuItemID, dto.Quantity, price, note)
}
