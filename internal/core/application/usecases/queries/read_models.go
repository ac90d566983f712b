// Package queries contains the read side. Handlers read committed state straight from
// the database and return flat read models; observers that reconnect use them to re-fetch
// authoritative state.
package queries

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
)

// OrderItemReadModel is one order line with the name of the menu item it refers to.
type OrderItemReadModel struct {
	ID           kernel.UUID
	MenuItemID   kernel.UUID
	MenuItemName string
	Quantity     int
	Price        kernel.Money
	Note         string
}

// OrderReadModel is an order with its lines in creation order.
type OrderReadModel struct {
	ID          kernel.UUID
	TableID     kernel.UUID
	Status      order.Status
	TotalAmount kernel.Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItemReadModel
}

type TableReadModel struct {
	ID        kernel.UUID
	QRCode    string
	Status    table.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MenuItemReadModel struct {
	ID          kernel.UUID
	Name        string
	Description string
	Price       kernel.Money
	Category    string
	ImageURL    string
	IsAvailable bool
}
