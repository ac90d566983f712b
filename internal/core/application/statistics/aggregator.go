// Package statistics recomputes the restaurant floor snapshot from committed state and
// publishes it to observers.
package statistics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	model "restaurant/internal/core/domain/model/statistics"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrStatisticsUnavailable wraps every failure to compute a snapshot. It never fails the
// operation that triggered the recomputation.
var ErrStatisticsUnavailable = errors.New("statistics unavailable")

// Aggregator computes the floor snapshot with one aggregate query and no caching.
//
// Example:
//
//	aggregator := statistics.NewAggregator(db, publisher, logger)
//	snapshot, err := aggregator.Recompute(ctx)
//	if errors.Is(err, statistics.ErrStatisticsUnavailable) {
//	    // report it; the triggering command already succeeded
//	}
type Aggregator struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewAggregator(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "statistics_aggregator"),
	}
}

type counts struct {
	TotalTables     int64
	OccupiedTables  int64
	AvailableTables int64
	PendingOrders   int64
	PreparingOrders int64
	ReadyOrders     int64
	ServedOrders    int64
	CompletedOrders int64
	CancelledOrders int64
	TotalRevenue    decimal.Decimal
}

// Recompute reads current table and order state and builds a snapshot. Both aggregates
// come from one statement, so the snapshot reflects a single commit point.
func (a *Aggregator) Recompute(ctx context.Context) (model.Snapshot, error) {
	var c counts
	err := a.db.WithContext(ctx).Raw(`
		SELECT t.*, o.*
		FROM (
			SELECT
				COUNT(*)                           AS total_tables,
				COUNT(*) FILTER (WHERE status = ?) AS occupied_tables,
				COUNT(*) FILTER (WHERE status = ?) AS available_tables
			FROM tables
		) AS t
		CROSS JOIN (
			SELECT
				COUNT(*) FILTER (WHERE status = ?)                        AS pending_orders,
				COUNT(*) FILTER (WHERE status = ?)                        AS preparing_orders,
				COUNT(*) FILTER (WHERE status = ?)                        AS ready_orders,
				COUNT(*) FILTER (WHERE status = ?)                        AS served_orders,
				COUNT(*) FILTER (WHERE status = ?)                        AS completed_orders,
				COUNT(*) FILTER (WHERE status = ?)                        AS cancelled_orders,
				COALESCE(SUM(total_amount) FILTER (WHERE status IN ?), 0) AS total_revenue
			FROM orders
		) AS o
	`,
		table.Occupied.String(),
		table.Available.String(),
		order.Pending.String(),
		order.Preparing.String(),
		order.Ready.String(),
		order.Served.String(),
		order.Completed.String(),
		order.Cancelled.String(),
		statusNames(order.RevenueStatuses()),
	).Scan(&c).Error
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: count tables and orders: %w", ErrStatisticsUnavailable, err)
	}

	revenue, err := kernel.NewMoney(c.TotalRevenue)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: revenue: %w", ErrStatisticsUnavailable, err)
	}

	return model.Snapshot{
		TotalTables:     c.TotalTables,
		OccupiedTables:  c.OccupiedTables,
		AvailableTables: c.AvailableTables,
		PendingOrders:   c.PendingOrders,
		PreparingOrders: c.PreparingOrders,
		ReadyOrders:     c.ReadyOrders,
		ServedOrders:    c.ServedOrders,
		CompletedOrders: c.CompletedOrders,
		CancelledOrders: c.CancelledOrders,
		TotalRevenue:    revenue,
	}, nil
}

// Refresh recomputes the snapshot and publishes statistics.updated.
func (a *Aggregator) Refresh(ctx context.Context) error {
	snapshot, err := a.Recompute(ctx)
	if err != nil {
		return err
	}

	if err = a.publisher.Publish(ctx, events.NewStatisticsUpdated(snapshot, time.Now().UTC())); err != nil {
		return fmt.Errorf("publish statistics: %w", err)
	}

	a.logger.DebugContext(ctx, "Statistics published",
		"active_orders", snapshot.ActiveOrders(),
		"occupied_tables", snapshot.OccupiedTables,
	)
	return nil
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
