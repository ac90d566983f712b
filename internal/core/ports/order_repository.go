package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored together with its items.
type OrderRepository interface {
	// Add persists a new order and all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order's status and UpdatedAt. Items are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get under a row lock held until the unit of work ends.
	// Two concurrent status updates of the same order serialize here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByTable counts orders of the table in pending, preparing or ready.
	CountActiveByTable(ctx context.Context, tableID kernel.UUID) (int64, error)
}
