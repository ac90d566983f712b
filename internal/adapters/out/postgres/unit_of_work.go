// Package postgres implements the Unit of Work over GORM and owns the schema.
//
// Every unit of work is a single PostgreSQL transaction. Begin sets a transaction-local
// lock_timeout so that a command blocked behind another command's row lock fails with a
// transient error instead of waiting forever:
//
//	factory := NewGormUnitOfWorkFactory(db, 5*time.Second)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	t, err := uow.TableRepository().GetForUpdate(ctx, tableID)
//	...
//	return uow.Commit(ctx)
//
// Once Begin succeeds the transaction is detached from ctx cancellation. A request that
// is abandoned while its Commit is in flight must not leave the outcome undetermined;
// lock waits are still bounded by lock_timeout.
package postgres

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultLockTimeout is used when the factory is given a non-positive timeout.
const DefaultLockTimeout = 5 * time.Second

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory whose transactions wait at most lockTimeout
// for a row lock.
func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &GormUnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

// Create produces a fresh unit of work. Instances must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:          f.db,
		lockTimeout: f.lockTimeout,
	}
}

// GormUnitOfWork is a single transaction and the repositories bound to it.
type GormUnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	lockTimeout time.Duration
}

// Begin opens the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := uow.db.WithContext(context.WithoutCancel(ctx)).Begin()
	if tx.Error != nil {
		return pgerr.Classify("begin transaction", tx.Error)
	}

	// SET LOCAL does not accept bind parameters.
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
	if err := tx.Exec(stmt).Error; err != nil {
		_ = tx.Rollback().Error
		return pgerr.Classify("set lock timeout", err)
	}

	uow.tx = tx
	return nil
}

// Commit makes the transaction's changes durable.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return pgerr.Classify("commit transaction", err)
	}
	return nil
}

// Rollback discards the transaction. Without an open transaction it does nothing, so it
// is safe to defer right after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns the order repository bound to the open transaction, or to the
// pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// TableRepository returns the table repository bound to the open transaction.
func (uow *GormUnitOfWork) TableRepository() ports.TableRepository {
	return tablerepo.NewGormTableRepository(uow.conn())
}

// MenuRepository returns the menu repository bound to the open transaction.
func (uow *GormUnitOfWork) MenuRepository() ports.MenuRepository {
	return menurepo.NewGormMenuRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
