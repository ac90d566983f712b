package order

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order would be created without lines.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order items")

	// ErrTotalMismatch is returned when the supplied total is not the sum of the line totals.
	ErrTotalMismatch = errors.New("order total does not match the sum of its items")
)

// Order is the aggregate root of the order lifecycle: a set of items placed at one
// table, the total computed from their snapshotted prices, and a status.
//
// Order follows these invariants:
//   - Must reference a valid table
//   - Owns at least one item; items are immutable once the order exists
//   - Total equals Σ(item.quantity × item.price) and is fixed at creation
//   - Status changes only through ChangeStatus, which follows the Status graph
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tableID is the table hosting the order
	tableID kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// total is the snapshotted total amount
	total kernel.Money

	// items are the order lines in the order they were submitted
	items []*Item

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order.
//
// Parameters:
//   - id: unique identifier for the order
//   - tableID: table hosting the order
//   - items: at least one constructed Item
//   - total: the order total as computed by the total calculator
//   - now: creation timestamp, also used as the first UpdatedAt
//
// Returns ErrTotalMismatch if total differs from the sum of the line totals.
//
// Example:
//
//	line, _ := order.NewItem(kernel.NewUUID(), pizzaID, 2, kernel.MustMoneyFromString("5.00"), "")
//	o, err := order.NewOrder(kernel.NewUUID(), tableID, []*order.Item{line},
//	    kernel.MustMoneyFromString("10.00"), time.Now())
func NewOrder(id, tableID kernel.UUID, items []*Item, total kernel.Money, now time.Time) (*Order, error) {
	return RestoreOrder(id, tableID, Pending, total, items, now, now)
}

// RestoreOrder rebuilds an order from persisted state, re-checking every invariant.
func RestoreOrder(
	id, tableID kernel.UUID,
	status Status,
	total kernel.Money,
	items []*Item,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableID(tableID),
		o.setStatus(status),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setTotal(total); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TableID returns the table hosting the order.
func (o *Order) TableID() kernel.UUID {
	return o.tableID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the snapshotted total amount.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Items returns a copy of the order lines.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to target and stamps UpdatedAt.
//
// Returns:
//   - the status the order had before the call
//   - *IllegalTransitionError if target is not reachable; the order is left unchanged
//
// Example:
//
//	previous, err := o.ChangeStatus(order.Served, time.Now())
//	if err == nil && o.Status().IsReleased() {
//	    // re-evaluate the table occupancy
//	}
func (o *Order) ChangeStatus(target Status, now time.Time) (Status, error) {
	previous := o.status

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return previous, err
	}

	o.status = next
	o.updatedAt = now
	return previous, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	o.tableID = tableID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

// setTotal must run after setItems.
func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}

	sum := kernel.ZeroMoney()
	for _, item := range o.items {
		sum = sum.Add(item.LineTotal())
	}
	if !sum.IsEqual(total) {
		return fmt.Errorf("%w: total is %s, items sum to %s", ErrTotalMismatch, total, sum)
	}

	o.total = total
	return nil
}
