package queries

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrGetMenuItemsQueryIsNotConstructed = errors.New(
	"GetMenuItemsQuery must be created via NewGetMenuItemsQuery constructor",
)

// GetMenuItemsQuery lists the menu grouped by category. availableOnly hides items the
// kitchen has switched off.
type GetMenuItemsQuery struct {
	availableOnly bool

	guard guard.ConstructorGuard
}

func NewGetMenuItemsQuery(availableOnly bool) GetMenuItemsQuery {
	return GetMenuItemsQuery{availableOnly: availableOnly, guard: guard.NewConstructorGuard()}
}

func (q GetMenuItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuItemsQueryIsNotConstructed)
}

func (q GetMenuItemsQuery) AvailableOnly() bool {
	return q.availableOnly
}
