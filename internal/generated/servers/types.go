package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for OrderStatus.
const (
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
)

// Defines values for TableStatus.
const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MenuItem defines model for MenuItem.
type MenuItem struct {
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Id          openapi_types.UUID `json:"id"`
	ImageUrl    string             `json:"image_url"`
	IsAvailable bool               `json:"is_available"`
	Name        string             `json:"name"`
	Price       string             `json:"price"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Items   []NewOrderItem     `json:"items"`
	TableId openapi_types.UUID `json:"table_id"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	MenuItemId openapi_types.UUID `json:"menu_item_id"`
	Notes      *string            `json:"notes,omitempty"`
	Quantity   int                `json:"quantity"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt   time.Time          `json:"created_at"`
	Id          openapi_types.UUID `json:"id"`
	Items       []OrderItem        `json:"items"`
	Status      OrderStatus        `json:"status"`
	TableId     openapi_types.UUID `json:"table_id"`
	TotalAmount string             `json:"total_amount"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Id           openapi_types.UUID `json:"id"`
	MenuItemId   openapi_types.UUID `json:"menu_item_id"`
	MenuItemName *string            `json:"menu_item_name,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
	Price        string             `json:"price"`
	Quantity     int                `json:"quantity"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// Statistics defines model for Statistics.
type Statistics struct {
	AvailableTables int64  `json:"availableTables"`
	CancelledOrders int64  `json:"cancelledOrders"`
	CompletedOrders int64  `json:"completedOrders"`
	OccupiedTables  int64  `json:"occupiedTables"`
	PendingOrders   int64  `json:"pendingOrders"`
	PreparingOrders int64  `json:"preparingOrders"`
	ReadyOrders     int64  `json:"readyOrders"`
	ServedOrders    int64  `json:"servedOrders"`
	TotalRevenue    string `json:"totalRevenue"`
	TotalTables     int64  `json:"totalTables"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Status OrderStatus `json:"status"`
}

// Table defines model for Table.
type Table struct {
	CreatedAt time.Time          `json:"created_at"`
	Id        openapi_types.UUID `json:"id"`
	QrCode    string             `json:"qr_code"`
	Status    TableStatus        `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// TableStatus defines model for Table.Status.
type TableStatus string

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// GetMenuItemsParams defines parameters for GetMenuItems.
type GetMenuItemsParams struct {
	Available *bool `form:"available,omitempty" json:"available,omitempty"`
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Active *bool `form:"active,omitempty" json:"active,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = StatusUpdate
