package events

import (
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/statistics"
	"restaurant/internal/core/domain/model/table"
)

// Amounts are rendered as fixed two-digit decimal strings so observers never see a
// float rounding artefact.

type OrderItemView struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
	Notes      string `json:"notes,omitempty"`
}

type OrderView struct {
	ID          string          `json:"id"`
	TableID     string          `json:"table_id"`
	Status      string          `json:"status"`
	TotalAmount string          `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Items       []OrderItemView `json:"items"`
}

type TableView struct {
	ID        string    `json:"id"`
	QRCode    string    `json:"qr_code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StatisticsView struct {
	TotalTables     int64  `json:"totalTables"`
	OccupiedTables  int64  `json:"occupiedTables"`
	AvailableTables int64  `json:"availableTables"`
	PendingOrders   int64  `json:"pendingOrders"`
	PreparingOrders int64  `json:"preparingOrders"`
	ReadyOrders     int64  `json:"readyOrders"`
	ServedOrders    int64  `json:"servedOrders"`
	CompletedOrders int64  `json:"completedOrders"`
	CancelledOrders int64  `json:"cancelledOrders"`
	TotalRevenue    string `json:"totalRevenue"`
}

type OrderCreatedPayload struct {
	Order OrderView       `json:"order"`
	Items []OrderItemView `json:"items"`
}

type OrderStatusUpdatedPayload struct {
	Order          OrderView `json:"order"`
	PreviousStatus string    `json:"previousStatus"`
}

type TableStatusUpdatedPayload struct {
	Table TableView `json:"table"`
}

type StatisticsUpdatedPayload struct {
	Snapshot StatisticsView `json:"snapshot"`
}

func NewOrderView(o *order.Order) OrderView {
	items := o.Items()
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, OrderItemView{
			ID:         item.ID().String(),
			OrderID:    o.ID().String(),
			MenuItemID: item.MenuItemID().String(),
			Quantity:   item.Quantity(),
			Price:      item.Price().String(),
			Notes:      item.Note(),
		})
	}

	return OrderView{
		ID:          o.ID().String(),
		TableID:     o.TableID().String(),
		Status:      o.Status().String(),
		TotalAmount: o.Total().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Items:       views,
	}
}

func NewTableView(t *table.Table) TableView {
	return TableView{
		ID:        t.ID().String(),
		QRCode:    t.QRCode(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func NewStatisticsView(s statistics.Snapshot) StatisticsView {
	return StatisticsView{
		TotalTables:     s.TotalTables,
		OccupiedTables:  s.OccupiedTables,
		AvailableTables: s.AvailableTables,
		PendingOrders:   s.PendingOrders,
		PreparingOrders: s.PreparingOrders,
		ReadyOrders:     s.ReadyOrders,
		ServedOrders:    s.ServedOrders,
		CompletedOrders: s.CompletedOrders,
		CancelledOrders: s.CancelledOrders,
		TotalRevenue:    s.TotalRevenue.String(),
	}
}
