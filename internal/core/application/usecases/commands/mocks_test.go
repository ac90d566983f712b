package commands_test

import (
	"context"
	"io"
	"log/slog"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) CountActiveByTable(ctx context.Context, tableID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tableID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTableRepository struct{ mock.Mock }

func (m *MockTableRepository) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*table.Table)
	return t, args.Error(1)
}

func (m *MockTableRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*table.Table)
	return t, args.Error(1)
}

func (m *MockTableRepository) GetAllIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

func (m *MockTableRepository) Update(ctx context.Context, t *table.Table) error {
	return m.Called(ctx, t).Error(0)
}

type MockMenuRepository struct{ mock.Mock }

func (m *MockMenuRepository) GetPrices(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]kernel.Money, error) {
	args := m.Called(ctx, ids)
	prices, _ := args.Get(0).(map[kernel.UUID]kernel.Money)
	return prices, args.Error(1)
}

type MockUoW struct {
	mock.Mock
	orders *MockOrderRepository
	tables *MockTableRepository
	menu   *MockMenuRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders: new(MockOrderRepository),
		tables: new(MockTableRepository),
		menu:   new(MockMenuRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository { return m.orders }
func (m *MockUoW) TableRepository() ports.TableRepository { return m.tables }
func (m *MockUoW) MenuRepository() ports.MenuRepository   { return m.menu }

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockTableUoWFactory struct{ mock.Mock }

func (m *MockTableUoWFactory) Create() commands.TableUoW {
	return m.Called().Get(0).(commands.TableUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

// published returns the event types in publication order.
func (m *MockEventPublisher) published() []events.Type {
	var types []events.Type
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			types = append(types, call.Arguments.Get(1).(events.Event).Type)
		}
	}
	return types
}

type MockStatisticsRefresher struct{ mock.Mock }

func (m *MockStatisticsRefresher) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
