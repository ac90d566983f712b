package queries

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New("GetOrdersQuery must be created via NewGetOrdersQuery constructor")

// GetOrdersQuery lists orders oldest first. With activeOnly it keeps pending, preparing
// and ready orders, which is what the kitchen view shows.
type GetOrdersQuery struct {
	activeOnly bool

	guard guard.ConstructorGuard
}

func NewGetOrdersQuery(activeOnly bool) GetOrdersQuery {
	return GetOrdersQuery{activeOnly: activeOnly, guard: guard.NewConstructorGuard()}
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) ActiveOnly() bool {
	return q.activeOnly
}
