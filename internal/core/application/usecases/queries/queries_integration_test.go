package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/application/events"
	"restaurant/internal/core/application/statistics"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) error { return nil }

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	tables *tablerepo.GormTableRepository
	menu   *menurepo.GormMenuRepository
	orders *orderrepo.GormOrderRepository

	t1, t2   *table.Table
	pizza    *menu.MenuItem
	tiramisu *menu.MenuItem
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))

	suite.tables = tablerepo.NewGormTableRepository(db)
	suite.menu = menurepo.NewGormMenuRepository(db)
	suite.orders = orderrepo.NewGormOrderRepository(db)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	err := suite.db.Exec("TRUNCATE TABLE order_items, orders, menu_items, tables CASCADE").Error
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.t1, err = table.NewTable(kernel.NewUUID(), "table-qr-001", now)
	suite.Require().NoError(err)
	suite.t2, err = table.NewTable(kernel.NewUUID(), "table-qr-002", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.tables.Add(ctx, suite.t2))
	suite.Require().NoError(suite.tables.Add(ctx, suite.t1))

	suite.pizza, err = menu.NewMenuItem(kernel.NewUUID(), "Margherita Pizza", "Classic",
		kernel.MustMoneyFromString("12.50"), "Main Course", true)
	suite.Require().NoError(err)
	suite.tiramisu, err = menu.NewMenuItem(kernel.NewUUID(), "Tiramisu", "",
		kernel.MustMoneyFromString("8.50"), "Dessert", false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.menu.Add(ctx, suite.pizza))
	suite.Require().NoError(suite.menu.Add(ctx, suite.tiramisu))
}

// addOrder stores an order for t1 and walks it through path.
func (suite *QueriesIntegrationTestSuite) addOrder(createdAt time.Time, path ...order.Status) *order.Order {
	ctx := context.Background()

	pizza, err := order.NewItem(kernel.NewUUID(), suite.pizza.ID(), 2, suite.pizza.Price(), "extra basil")
	suite.Require().NoError(err)
	tiramisu, err := order.NewItem(kernel.NewUUID(), suite.tiramisu.ID(), 1, suite.tiramisu.Price(), "")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), suite.t1.ID(), []*order.Item{pizza, tiramisu},
		kernel.MustMoneyFromString("33.50"), createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, o))

	for _, s := range path {
		_, err = o.ChangeStatus(s, createdAt.Add(time.Minute))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(suite.orders.Update(ctx, o))
	return o
}

func (suite *QueriesIntegrationTestSuite) TestGetOrders() {
	base := time.Now().UTC().Add(-time.Hour)
	first := suite.addOrder(base)
	second := suite.addOrder(base.Add(time.Second), order.Preparing, order.Ready, order.Served)
	third := suite.addOrder(base.Add(2*time.Second), order.Cancelled)

	handler := queries.NewGetOrdersQueryHandler(suite.db)

	all, err := handler.Handle(context.Background(), queries.NewGetOrdersQuery(false))
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(first.ID(), all[0].ID)
	suite.Equal(second.ID(), all[1].ID)
	suite.Equal(third.ID(), all[2].ID)
	suite.Equal(order.Served, all[1].Status)

	items := all[0].Items
	suite.Require().Len(items, 2)
	suite.Equal("Margherita Pizza", items[0].MenuItemName)
	suite.Equal("12.50", items[0].Price.String())
	suite.Equal("extra basil", items[0].Note)
	suite.Equal("Tiramisu", items[1].MenuItemName)
	suite.Equal("33.50", all[0].TotalAmount.String())

	active, err := handler.Handle(context.Background(), queries.NewGetOrdersQuery(true))
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.Equal(first.ID(), active[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrders_Empty() {
	result, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(context.Background(), queries.NewGetOrdersQuery(false))
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder() {
	o := suite.addOrder(time.Now().UTC(), order.Preparing)
	handler := queries.NewGetOrderQueryHandler(suite.db)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	result, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(o.ID(), result.ID)
	suite.Equal(suite.t1.ID(), result.TableID)
	suite.Equal(order.Preparing, result.Status)
	suite.Len(result.Items, 2)

	query, err = queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetTables_OrderedByQRCode() {
	result, err := queries.NewGetTablesQueryHandler(suite.db).Handle(context.Background(), queries.NewGetTablesQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("table-qr-001", result[0].QRCode)
	suite.Equal(suite.t1.ID(), result[0].ID)
	suite.Equal(table.Available, result[0].Status)
	suite.Equal("table-qr-002", result[1].QRCode)
}

func (suite *QueriesIntegrationTestSuite) TestGetMenuItems() {
	handler := queries.NewGetMenuItemsQueryHandler(suite.db)

	all, err := handler.Handle(context.Background(), queries.NewGetMenuItemsQuery(false))
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("Tiramisu", all[0].Name, "Dessert sorts before Main Course")
	suite.False(all[0].IsAvailable)
	suite.Equal("12.50", all[1].Price.String())

	available, err := handler.Handle(context.Background(), queries.NewGetMenuItemsQuery(true))
	suite.Require().NoError(err)
	suite.Require().Len(available, 1)
	suite.Equal(suite.pizza.ID(), available[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestGetStatisticsSnapshot() {
	base := time.Now().UTC()
	suite.addOrder(base)
	suite.addOrder(base, order.Preparing)
	suite.addOrder(base, order.Preparing, order.Ready, order.Served)
	suite.addOrder(base, order.Preparing, order.Ready, order.Served, order.Completed)
	suite.addOrder(base, order.Cancelled)

	ctx := context.Background()
	t1, err := suite.tables.Get(ctx, suite.t1.ID())
	suite.Require().NoError(err)
	t1.Occupy(base)
	suite.Require().NoError(suite.tables.Update(ctx, t1))

	aggregator := statistics.NewAggregator(suite.db, nopPublisher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := queries.NewGetStatisticsSnapshotQueryHandler(aggregator)

	snapshot, err := handler.Handle(ctx, queries.NewGetStatisticsSnapshotQuery())
	suite.Require().NoError(err)
	suite.Equal(int64(2), snapshot.TotalTables)
	suite.Equal(int64(1), snapshot.OccupiedTables)
	suite.Equal(int64(1), snapshot.AvailableTables)
	suite.Equal(int64(1), snapshot.PendingOrders)
	suite.Equal(int64(1), snapshot.PreparingOrders)
	suite.Equal(int64(0), snapshot.ReadyOrders)
	suite.Equal(int64(1), snapshot.ServedOrders)
	suite.Equal(int64(1), snapshot.CompletedOrders)
	suite.Equal(int64(1), snapshot.CancelledOrders)
	suite.Equal("67.00", snapshot.TotalRevenue.String())
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
