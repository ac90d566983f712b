package services

import (
	"math"
	"time"

	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
)

// TableOccupancyCoordinator keeps the occupancy invariant: a table is occupied exactly
// when it hosts at least one order in pending, preparing or ready.
//
// The caller must hold the table row lock and count active orders inside the same
// transaction; the coordinator only decides and mutates the table.
//
// Example:
//
//	t, _ := uow.TableRepository().GetForUpdate(ctx, o.TableID())
//	active, _ := uow.OrderRepository().CountActiveByTable(ctx, o.TableID())
//	changed, err := coordinator.OnOrderReleased(t, active, now)
//	if changed {
//	    err = uow.TableRepository().Update(ctx, t)
//	}
type TableOccupancyCoordinator struct{}

func NewTableOccupancyCoordinator() TableOccupancyCoordinator {
	return TableOccupancyCoordinator{}
}

// OnOrderCreated occupies the table unconditionally and reports whether it was
// available before.
func (TableOccupancyCoordinator) OnOrderCreated(t *table.Table, now time.Time) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	return t.Occupy(now), nil
}

// OnOrderReleased frees the table only when activeOrders, the number of orders still
// active on it after the release, is zero. Otherwise the table is left untouched.
func (TableOccupancyCoordinator) OnOrderReleased(t *table.Table, activeOrders int64, now time.Time) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	if activeOrders < 0 {
		return false, errs.NewValueIsOutOfRangeError("active orders", activeOrders, 0, int64(math.MaxInt64))
	}
	if activeOrders > 0 {
		return false, nil
	}
	if !t.IsOccupied() {
		return false, nil
	}
	return t.Release(now), nil
}

// Reconcile sets the table status from its active order count and reports whether the
// status was wrong.
func (TableOccupancyCoordinator) Reconcile(t *table.Table, activeOrders int64, now time.Time) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	if activeOrders < 0 {
		return false, errs.NewValueIsOutOfRangeError("active orders", activeOrders, 0, int64(math.MaxInt64))
	}

	shouldBeOccupied := activeOrders > 0
	if shouldBeOccupied == t.IsOccupied() {
		return false, nil
	}
	if shouldBeOccupied {
		return t.Occupy(now), nil
	}
	return t.Release(now), nil
}
