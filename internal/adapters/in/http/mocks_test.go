package http_test

import (
	"context"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/statistics"
	"restaurant/internal/core/domain/model/table"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct {
	mock.Mock
}

func (m *MockCreateOrderHandler) Handle(ctx context.Context, command commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, command)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUpdateOrderStatusHandler struct {
	mock.Mock
}

func (m *MockUpdateOrderStatusHandler) Handle(
	ctx context.Context,
	command commands.UpdateOrderStatusCommand,
) (*order.Order, error) {
	args := m.Called(ctx, command)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockReconcileTablesHandler struct {
	mock.Mock
}

func (m *MockReconcileTablesHandler) Handle(
	ctx context.Context,
	command commands.ReconcileTableOccupancyCommand,
) ([]*table.Table, error) {
	args := m.Called(ctx, command)
	tables, _ := args.Get(0).([]*table.Table)
	return tables, args.Error(1)
}

type MockGetOrdersHandler struct {
	mock.Mock
}

func (m *MockGetOrdersHandler) Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderReadModel, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.OrderReadModel)
	return orders, args.Error(1)
}

type MockGetOrderHandler struct {
	mock.Mock
}

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderReadModel, error) {
	args := m.Called(ctx, query)
	o, _ := args.Get(0).(queries.OrderReadModel)
	return o, args.Error(1)
}

type MockGetTablesHandler struct {
	mock.Mock
}

func (m *MockGetTablesHandler) Handle(ctx context.Context, query queries.GetTablesQuery) ([]queries.TableReadModel, error) {
	args := m.Called(ctx, query)
	tables, _ := args.Get(0).([]queries.TableReadModel)
	return tables, args.Error(1)
}

type MockGetMenuItemsHandler struct {
	mock.Mock
}

func (m *MockGetMenuItemsHandler) Handle(
	ctx context.Context,
	query queries.GetMenuItemsQuery,
) ([]queries.MenuItemReadModel, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]queries.MenuItemReadModel)
	return items, args.Error(1)
}

type MockGetStatisticsHandler struct {
	mock.Mock
}

func (m *MockGetStatisticsHandler) Handle(
	ctx context.Context,
	query queries.GetStatisticsSnapshotQuery,
) (statistics.Snapshot, error) {
	args := m.Called(ctx, query)
	snapshot, _ := args.Get(0).(statistics.Snapshot)
	return snapshot, args.Error(1)
}
