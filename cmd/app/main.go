package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant/cmd"
	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/pgnotify"
	postgres_adapter "restaurant/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err = run(configs, newLogger(configs.LogLevel)); err != nil {
		log.Fatalf("Restaurant service stopped: %v", err)
	}
}

func run(configs cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(ctx, configs)
	if err != nil {
		return err
	}
	if err = prepareDatabase(ctx, configs, gormDB, logger); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to release resources", "error", closeErr)
		}
	}()

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return startWebServer(e, configs.HTTPPort, logger)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Closing the hub ends the open event streams so Shutdown does not wait for them.
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to release resources", "error", closeErr)
		}
		return e.Shutdown(shutdownCtx)
	})

	for _, runner := range app.Runners() {
		g.Go(func() error {
			if runErr := runner(gctx); runErr != nil && gctx.Err() == nil {
				return runErr
			}
			return nil
		})
	}

	return g.Wait()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With("service", "restaurant")
}

func openDatabase(ctx context.Context, configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return gormDB, nil
}

func prepareDatabase(ctx context.Context, configs cmd.Config, gormDB *gorm.DB, logger *slog.Logger) error {
	if err := postgres_adapter.Migrate(ctx, gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if configs.EventsBackend == cmd.EventsBackendPostgres {
		if err := pgnotify.Migrate(ctx, gormDB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if !configs.DBSeed {
		return nil
	}
	seeded, err := postgres_adapter.Seed(ctx, gormDB, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("Seed finished", "inserted", seeded)
	return nil
}

func startWebServer(e *echo.Echo, port string, logger *slog.Logger) error {
	logger.Info("HTTP server listening", "port", port)
	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", port),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := e.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
