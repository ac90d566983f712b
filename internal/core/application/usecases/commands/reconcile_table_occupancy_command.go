package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrReconcileTableOccupancyCommandIsNotConstructed = errors.New(
	"ReconcileTableOccupancyCommand must be created via NewReconcileTableOccupancyCommand constructor",
)

// ReconcileTableOccupancyCommand re-derives every table's status from its active orders.
// It repairs drift introduced outside the order lifecycle, e.g. by the table registry.
type ReconcileTableOccupancyCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileTableOccupancyCommand() ReconcileTableOccupancyCommand {
	return ReconcileTableOccupancyCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileTableOccupancyCommand) Validate() error {
	return c.guard.Validate(ErrReconcileTableOccupancyCommandIsNotConstructed)
}
