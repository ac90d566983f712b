package queries

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrGetTablesQueryIsNotConstructed = errors.New("GetTablesQuery must be created via NewGetTablesQuery constructor")

// GetTablesQuery lists every table with its occupancy.
type GetTablesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTablesQuery() GetTablesQuery {
	return GetTablesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetTablesQuery) Validate() error {
	return q.guard.Validate(ErrGetTablesQueryIsNotConstructed)
}
