// Package commands contains the write side of the order lifecycle.
// Every handler follows the same pattern: validate the command before any transaction,
// do all reads and writes inside one unit of work, commit, and only then notify observers.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TableRepoFactory provides access to the table repository within a transaction.
	TableRepoFactory interface {
		TableRepository() ports.TableRepository
	}

	// MenuRepoFactory provides access to the menu catalog within a transaction.
	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	// UoW spans orders, tables and the menu. Used by order creation and status updates.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   t, err := uow.TableRepository().GetForUpdate(ctx, tableID)
	//   prices, err := resolver.Resolve(ctx, uow.MenuRepository(), ids)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		TableRepoFactory
		MenuRepoFactory
	}

	// UoWFactory creates new unit of work instances for order operations.
	UoWFactory interface {
		Create() UoW
	}

	// TableUoW manages transactions that only re-evaluate table occupancy.
	TableUoW interface {
		TxManager
		TableRepoFactory
		OrderRepoFactory
	}

	// TableUoWFactory creates new table unit of work instances.
	TableUoWFactory interface {
		Create() TableUoW
	}
)
