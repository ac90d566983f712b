// Package statistics holds the derived, never persisted, view of the restaurant floor.
package statistics

import (
	"restaurant/internal/core/domain/model/kernel"
)

// Snapshot counts tables by occupancy and orders by status, plus the revenue of every
// served or completed order. It is recomputed from committed state on every request.
type Snapshot struct {
	TotalTables     int64
	OccupiedTables  int64
	AvailableTables int64

	PendingOrders   int64
	PreparingOrders int64
	ReadyOrders     int64
	ServedOrders    int64
	CompletedOrders int64
	CancelledOrders int64

	TotalRevenue kernel.Money
}

// ActiveOrders is the number of orders still holding a table.
func (s Snapshot) ActiveOrders() int64 {
	return s.PendingOrders + s.PreparingOrders + s.ReadyOrders
}
