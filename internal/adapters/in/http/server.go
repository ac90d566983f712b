package http

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/adapters/out/broadcast"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/statistics"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/generated/servers"
)

// Use case contracts the server depends on. The command and query handlers of the
// application layer satisfy them as they are.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, command commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, command commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	ReconcileTablesHandler interface {
		Handle(ctx context.Context, command commands.ReconcileTableOccupancyCommand) ([]*table.Table, error)
	}
	GetOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderReadModel, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderReadModel, error)
	}
	GetTablesHandler interface {
		Handle(ctx context.Context, query queries.GetTablesQuery) ([]queries.TableReadModel, error)
	}
	GetMenuItemsHandler interface {
		Handle(ctx context.Context, query queries.GetMenuItemsQuery) ([]queries.MenuItemReadModel, error)
	}
	GetStatisticsHandler interface {
		Handle(ctx context.Context, query queries.GetStatisticsSnapshotQuery) (statistics.Snapshot, error)
	}
	// EventSource hands out subscriptions to the committed event stream.
	EventSource interface {
		Subscribe() (*broadcast.Subscription, error)
	}
)

// DefaultKeepAlive is how often an idle event stream receives a comment line.
const DefaultKeepAlive = 15 * time.Second

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	updateOrderStatusHandler UpdateOrderStatusHandler
	reconcileTablesHandler   ReconcileTablesHandler

	// Query handlers
	getOrdersHandler     GetOrdersHandler
	getOrderHandler      GetOrderHandler
	getTablesHandler     GetTablesHandler
	getMenuItemsHandler  GetMenuItemsHandler
	getStatisticsHandler GetStatisticsHandler

	events    EventSource
	keepAlive time.Duration
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	updateOrderStatusHandler UpdateOrderStatusHandler,
	reconcileTablesHandler ReconcileTablesHandler,
	getOrdersHandler GetOrdersHandler,
	getOrderHandler GetOrderHandler,
	getTablesHandler GetTablesHandler,
	getMenuItemsHandler GetMenuItemsHandler,
	getStatisticsHandler GetStatisticsHandler,
	events EventSource,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		reconcileTablesHandler:   reconcileTablesHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getTablesHandler:         getTablesHandler,
		getMenuItemsHandler:      getMenuItemsHandler,
		getStatisticsHandler:     getStatisticsHandler,
		events:                   events,
		keepAlive:                DefaultKeepAlive,
		logger:                   logger.With("component", "http_server"),
	}
}

// WithKeepAlive changes the idle interval of event streams.
func (s *Server) WithKeepAlive(interval time.Duration) *Server {
	if interval > 0 {
		s.keepAlive = interval
	}
	return s
}
