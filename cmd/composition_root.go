package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/broadcast"
	"restaurant/internal/adapters/out/pgnotify"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/rabbitmq"
	"restaurant/internal/core/application/statistics"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// Runner is a long-lived background component supervised by main.
type Runner func(ctx context.Context) error

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory

	hub        *broadcast.Hub
	publisher  ports.EventPublisher
	aggregator *statistics.Aggregator

	runners []Runner
	closers []func() error
}

// NewCompositionRoot wires the event back-end selected by EVENTS_BACKEND.
//
// Observers always read from the in-process hub. With the memory back-end commands
// publish straight into it. With rabbitmq or postgres they publish to the broker and a
// relay feeds every broker message into the hub, so each instance's observers see the
// changes committed by every instance.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.DBLockTimeout),
		hub:        broadcast.NewHub(broadcast.DefaultBuffer, logger),
	}
	c.closers = append(c.closers, func() error {
		c.hub.Close()
		return nil
	})

	switch cfg.EventsBackend {
	case EventsBackendMemory:
		c.publisher = c.hub
	case EventsBackendRabbitMQ:
		if err := c.wireRabbitMQ(); err != nil {
			return nil, errors.Join(err, c.Close())
		}
	case EventsBackendPostgres:
		c.publisher = pgnotify.NewPublisher(gormDB, cfg.PGNotifyChannel)
		listener := pgnotify.NewListener(gormDB, cfg.DSN(), cfg.PGNotifyChannel, c.hub, logger)
		c.runners = append(c.runners, listener.Run)
	default:
		return nil, fmt.Errorf("%w: unknown EVENTS_BACKEND %q", ErrInvalidConfig, cfg.EventsBackend)
	}

	c.aggregator = statistics.NewAggregator(gormDB, c.publisher, logger)

	logger.Info("Event back-end selected", "backend", cfg.EventsBackend)
	return c, nil
}

func (c *CompositionRoot) wireRabbitMQ() error {
	conn, err := amqp.Dial(c.cfg.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.closers = append(c.closers, conn.Close)

	publisher, err := rabbitmq.NewPublisher(conn, c.cfg.RabbitMQExchange)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, publisher.Close)
	c.publisher = publisher

	relay := rabbitmq.NewRelay(conn, c.cfg.RabbitMQExchange, c.hub, c.logger)
	c.runners = append(c.runners, relay.Run)
	return nil
}

// Runners returns the background components of the selected event back-end.
func (c *CompositionRoot) Runners() []Runner {
	return c.runners
}

// Close releases broker connections and ends every observer stream. Closers run in
// reverse order of creation.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.publisher, c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateReconcileTableOccupancyCommandHandler() commands.ReconcileTableOccupancyCommandHandler {
	var f commands.TableUoWFactory = FuncTableUoWFactory(func() commands.TableUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileTableOccupancyCommandHandler(f, c.publisher, c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTablesQueryHandler() queries.GetTablesQueryHandler {
	return queries.NewGetTablesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMenuItemsQueryHandler() queries.GetMenuItemsQueryHandler {
	return queries.NewGetMenuItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatisticsSnapshotQueryHandler() queries.GetStatisticsSnapshotQueryHandler {
	return queries.NewGetStatisticsSnapshotQueryHandler(c.aggregator)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateReconcileTableOccupancyCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetTablesQueryHandler(),
		c.CreateGetMenuItemsQueryHandler(),
		c.CreateGetStatisticsSnapshotQueryHandler(),
		c.hub,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.aggregator,
		c.CreateReconcileTableOccupancyCommandHandler(),
		jobs.Schedules{
			StatisticsHeartbeat: c.cfg.StatisticsHeartbeat,
			OccupancyReconcile:  c.cfg.OccupancyReconcile,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncTableUoWFactory func() commands.TableUoW

func (f FuncTableUoWFactory) Create() commands.TableUoW {
	return f()
}
