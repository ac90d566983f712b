package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for every command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one store transaction. Repositories obtained from it read and write
// inside that transaction, and row locks taken through them last until Commit or
// Rollback.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx) // no-op after Commit
//	...
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin starts a new transaction with the configured lock timeout.
	Begin(ctx context.Context) error

	// Commit commits the current transaction. Once started it runs to completion even if
	// ctx is cancelled.
	Commit(ctx context.Context) error

	// Rollback rolls the current transaction back. Without an open transaction it does
	// nothing, so deferring it after Begin is safe.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TableRepository() TableRepository
	MenuRepository() MenuRepository
}
