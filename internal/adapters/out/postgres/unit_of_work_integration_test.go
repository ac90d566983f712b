package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	postgres_adapter "restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/application/events"
	"restaurant/internal/core/application/statistics"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type uowFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type tableUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f tableUoWFactory) Create() commands.TableUoW {
	return f.factory.Create()
}

// UnitOfWorkIntegrationTestSuite runs the command handlers against a real PostgreSQL
// so that row locks, lock timeouts and rollbacks are exercised for real.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	publisher *recordingPublisher

	createHandler    commands.CreateOrderCommandHandler
	updateHandler    commands.UpdateOrderStatusCommandHandler
	reconcileHandler commands.ReconcileTableOccupancyCommandHandler
	aggregator       *statistics.Aggregator

	table *table.Table
	itemA *menu.MenuItem
	itemB *menu.MenuItem
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, 5*time.Second)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders, menu_items, tables CASCADE").Error
	suite.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.publisher = &recordingPublisher{}
	suite.aggregator = statistics.NewAggregator(suite.db, suite.publisher, logger)
	suite.createHandler = commands.NewCreateOrderCommandHandler(
		uowFactory{suite.factory}, suite.publisher, suite.aggregator, logger)
	suite.updateHandler = commands.NewUpdateOrderStatusCommandHandler(
		uowFactory{suite.factory}, suite.publisher, suite.aggregator, logger)
	suite.reconcileHandler = commands.NewReconcileTableOccupancyCommandHandler(
		tableUoWFactory{suite.factory}, suite.publisher, suite.aggregator, logger)

	suite.table = suite.addTable(ctx, "table-qr-001")
	suite.itemA = suite.addMenuItem(ctx, "Item A", "5.00")
	suite.itemB = suite.addMenuItem(ctx, "Item B", "3.00")
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) addTable(ctx context.Context, qr string) *table.Table {
	t, err := table.NewTable(kernel.NewUUID(), qr, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(tablerepo.NewGormTableRepository(suite.db).Add(ctx, t))
	return t
}

func (suite *UnitOfWorkIntegrationTestSuite) addMenuItem(ctx context.Context, name, price string) *menu.MenuItem {
	item, err := menu.NewMenuItem(kernel.NewUUID(), name, "", kernel.MustMoneyFromString(price), "Main Course", true)
	suite.Require().NoError(err)
	suite.Require().NoError(menurepo.NewGormMenuRepository(suite.db).Add(ctx, item))
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrder(ctx context.Context, tableID kernel.UUID) *order.Order {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tableID, []commands.OrderLine{
		{MenuItemID: suite.itemA.ID(), Quantity: 2},
		{MenuItemID: suite.itemB.ID(), Quantity: 1, Note: "no ice"},
	})
	suite.Require().NoError(err)

	o, err := suite.createHandler.Handle(ctx, cmd)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) updateStatus(ctx context.Context, id kernel.UUID, s order.Status) error {
	cmd, err := commands.NewUpdateOrderStatusCommand(id, s)
	suite.Require().NoError(err)
	_, err = suite.updateHandler.Handle(ctx, cmd)
	return err
}

func (suite *UnitOfWorkIntegrationTestSuite) tableStatus(ctx context.Context, id kernel.UUID) table.Status {
	t, err := tablerepo.NewGormTableRepository(suite.db).Get(ctx, id)
	suite.Require().NoError(err)
	return t.Status()
}

func (suite *UnitOfWorkIntegrationTestSuite) count(model any) int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(model).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin keeps the open transaction")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().NoError(uow.Rollback(ctx), "rollback without a transaction does nothing")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	t, err := uow.TableRepository().GetForUpdate(ctx, suite.table.ID())
	suite.Require().NoError(err)
	suite.True(t.Occupy(time.Now().UTC()))
	suite.Require().NoError(uow.TableRepository().Update(ctx, t))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(table.Available, suite.tableStatus(ctx, suite.table.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLockTimeout_IsTransient() {
	ctx := context.Background()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(suite.db, 300*time.Millisecond)

	holder := factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.TableRepository().GetForUpdate(ctx, suite.table.ID())
	suite.Require().NoError(err)

	waiter := factory.Create()
	suite.Require().NoError(waiter.Begin(ctx))
	defer func() { _ = waiter.Rollback(ctx) }()

	start := time.Now()
	_, err = waiter.TableRepository().GetForUpdate(ctx, suite.table.ID())
	suite.Require().ErrorIs(err, errs.ErrTransientStoreFailure)
	suite.Less(time.Since(start), 3*time.Second)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_SnapshotsPricesAndOccupiesTable() {
	ctx := context.Background()

	o := suite.createOrder(ctx, suite.table.ID())

	suite.Equal(order.Pending, o.Status())
	suite.Equal("13.00", o.Total().String())
	suite.Equal(table.Occupied, suite.tableStatus(ctx, suite.table.ID()))
	suite.Equal([]events.Type{events.OrderCreated, events.TableStatusUpdated, events.StatisticsUpdated},
		suite.publisher.types())

	err := suite.db.Model(&menurepo.MenuItemDTO{}).
		Where("id = ?", suite.itemA.ID().Bytes()).
		Update("price", "99.99").Error
	suite.Require().NoError(err)

	stored, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("13.00", stored.Total().String())
	suite.Equal("5.00", stored.Items()[0].Price().String())
	suite.Equal("no ice", stored.Items()[1].Note())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_UnknownMenuItem_RollsBackEverything() {
	ctx := context.Background()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), suite.table.ID(), []commands.OrderLine{
		{MenuItemID: suite.itemA.ID(), Quantity: 1},
		{MenuItemID: kernel.NewUUID(), Quantity: 1},
	})
	suite.Require().NoError(err)

	_, err = suite.createHandler.Handle(ctx, cmd)
	suite.Require().ErrorIs(err, services.ErrUnknownMenuItem)

	suite.Zero(suite.count(&orderrepo.OrderDTO{}))
	suite.Zero(suite.count(&orderrepo.OrderItemDTO{}))
	suite.Equal(table.Available, suite.tableStatus(ctx, suite.table.ID()))
	suite.Empty(suite.publisher.types())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLifecycle_ServedReleasesTableAndCountsRevenue() {
	ctx := context.Background()
	o := suite.createOrder(ctx, suite.table.ID())

	suite.Require().ErrorIs(suite.updateStatus(ctx, o.ID(), order.Ready), order.ErrIllegalTransition)

	for _, s := range []order.Status{order.Preparing, order.Ready} {
		suite.Require().NoError(suite.updateStatus(ctx, o.ID(), s))
		suite.Equal(table.Occupied, suite.tableStatus(ctx, suite.table.ID()))
	}
	suite.Require().NoError(suite.updateStatus(ctx, o.ID(), order.Served))
	suite.Equal(table.Available, suite.tableStatus(ctx, suite.table.ID()))

	snapshot, err := suite.aggregator.Recompute(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), snapshot.ServedOrders)
	suite.Equal(int64(0), snapshot.ActiveOrders())
	suite.Equal(int64(1), snapshot.TotalTables)
	suite.Equal(int64(1), snapshot.AvailableTables)
	suite.Equal("13.00", snapshot.TotalRevenue.String())

	suite.Require().NoError(suite.updateStatus(ctx, o.ID(), order.Completed))
	snapshot, err = suite.aggregator.Recompute(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), snapshot.CompletedOrders)
	suite.Equal("13.00", snapshot.TotalRevenue.String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReleasingOneOfTwoOrders_KeepsTableOccupied() {
	ctx := context.Background()
	first := suite.createOrder(ctx, suite.table.ID())
	second := suite.createOrder(ctx, suite.table.ID())

	suite.Require().NoError(suite.updateStatus(ctx, first.ID(), order.Cancelled))
	suite.Equal(table.Occupied, suite.tableStatus(ctx, suite.table.ID()))

	suite.Require().NoError(suite.updateStatus(ctx, second.ID(), order.Cancelled))
	suite.Equal(table.Available, suite.tableStatus(ctx, suite.table.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentStatusUpdates_ExactlyOneSucceeds() {
	ctx := context.Background()
	o := suite.createOrder(ctx, suite.table.ID())
	suite.Require().NoError(suite.updateStatus(ctx, o.ID(), order.Preparing))
	suite.Require().NoError(suite.updateStatus(ctx, o.ID(), order.Ready))

	// served and cancelled are both reachable from ready but not from each other.
	targets := []order.Status{order.Served, order.Cancelled}
	results := make([]error, len(targets))

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = suite.updateStatus(ctx, o.ID(), target)
		}()
	}
	close(start)
	wg.Wait()

	var winner order.Status
	succeeded := 0
	for i, err := range results {
		if err == nil {
			succeeded++
			winner = targets[i]
			continue
		}
		suite.ErrorIs(err, order.ErrIllegalTransition)
	}
	suite.Require().Equal(1, succeeded)

	stored, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(winner, stored.Status())
	suite.Equal(table.Available, suite.tableStatus(ctx, suite.table.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReconcile_FixesDrift() {
	ctx := context.Background()
	busy := suite.addTable(ctx, "table-qr-002")
	suite.createOrder(ctx, busy.ID())

	// Drift written behind the service's back by the table registry.
	err := suite.db.Model(&tablerepo.TableDTO{}).
		Where("id = ?", suite.table.ID().Bytes()).
		Update("status", table.Occupied.String()).Error
	suite.Require().NoError(err)
	err = suite.db.Model(&tablerepo.TableDTO{}).
		Where("id = ?", busy.ID().Bytes()).
		Update("status", table.Available.String()).Error
	suite.Require().NoError(err)

	fixed, err := suite.reconcileHandler.Handle(ctx, commands.NewReconcileTableOccupancyCommand())
	suite.Require().NoError(err)
	suite.Len(fixed, 2)

	suite.Equal(table.Available, suite.tableStatus(ctx, suite.table.ID()))
	suite.Equal(table.Occupied, suite.tableStatus(ctx, busy.ID()))

	fixed, err = suite.reconcileHandler.Handle(ctx, commands.NewReconcileTableOccupancyCommand())
	suite.Require().NoError(err)
	suite.Empty(fixed)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSeed_FillsEmptyCatalogOnce() {
	ctx := context.Background()
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders, menu_items, tables CASCADE").Error)

	seeded, err := postgres_adapter.Seed(ctx, suite.db, time.Now().UTC())
	suite.Require().NoError(err)
	suite.True(seeded)
	suite.Equal(int64(4), suite.count(&tablerepo.TableDTO{}))
	suite.Equal(int64(7), suite.count(&menurepo.MenuItemDTO{}))

	seeded, err = postgres_adapter.Seed(ctx, suite.db, time.Now().UTC())
	suite.Require().NoError(err)
	suite.False(seeded)
	suite.Equal(int64(7), suite.count(&menurepo.MenuItemDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStatisticsSnapshot_ReflectsOneCommitPoint() {
	ctx := context.Background()
	line := []commands.OrderLine{{MenuItemID: suite.itemA.ID(), Quantity: 1}}

	done := make(chan error, 1)
	go func() {
		for range 25 {
			cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), suite.table.ID(), line)
			if err != nil {
				done <- err
				return
			}
			o, err := suite.createHandler.Handle(ctx, cmd)
			if err != nil {
				done <- err
				return
			}
			cancel, err := commands.NewUpdateOrderStatusCommand(o.ID(), order.Cancelled)
			if err != nil {
				done <- err
				return
			}
			if _, err = suite.updateHandler.Handle(ctx, cancel); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for {
		snapshot, err := suite.aggregator.Recompute(ctx)
		suite.Require().NoError(err)
		suite.Require().Equal(snapshot.ActiveOrders() > 0, snapshot.OccupiedTables == 1,
			"occupied tables %d with %d active orders", snapshot.OccupiedTables, snapshot.ActiveOrders())

		select {
		case err = <-done:
			suite.Require().NoError(err)
			return
		default:
		}
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
