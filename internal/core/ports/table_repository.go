package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
)

// TableRepository is the narrow view of the table registry the order lifecycle needs.
// Tables are created and deleted by the registry, never by this service.
type TableRepository interface {
	// Get retrieves a table. Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetForUpdate is Get under a row lock held until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetAllIDs returns every table identifier, ordered.
	GetAllIDs(ctx context.Context) ([]kernel.UUID, error)

	// Update persists the table's status and UpdatedAt.
	Update(ctx context.Context, t *table.Table) error
}
