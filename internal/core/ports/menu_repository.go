package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
)

// MenuRepository is the read-only view of the menu catalog.
type MenuRepository interface {
	// GetPrices returns the current unit price of every known item among ids.
	// Unknown identifiers are absent from the map; that is not an error.
	GetPrices(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]kernel.Money, error)
}
