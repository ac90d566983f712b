package jobs

import (
	"context"
	"log/slog"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/table"

	"github.com/robfig/cron/v3"
)

// OccupancyReconciler re-derives table occupancy from active orders.
type OccupancyReconciler interface {
	Handle(ctx context.Context, command commands.ReconcileTableOccupancyCommand) ([]*table.Table, error)
}

// OccupancyReconciliationJob periodically repairs tables whose status drifted from their
// orders, e.g. after a manual change in the table registry.
type OccupancyReconciliationJob struct {
	reconciler OccupancyReconciler
	spec       string
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewOccupancyReconciliationJob(
	reconciler OccupancyReconciler,
	spec string,
	logger *slog.Logger,
) *OccupancyReconciliationJob {
	return &OccupancyReconciliationJob{
		reconciler: reconciler,
		spec:       spec,
		cron:       newCron(),
		logger:     logger.With("component", "occupancy_reconciliation_job"),
	}
}

// Run performs one reconciliation pass. It implements cron.Job.
func (j *OccupancyReconciliationJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	fixed, err := j.reconciler.Handle(ctx, commands.NewReconcileTableOccupancyCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Occupancy reconciliation failed", "error", err)
	}

	for _, t := range fixed {
		j.logger.WarnContext(ctx, "Table occupancy corrected",
			"table_id", t.ID().String(), "qr_code", t.QRCode(), "status", t.Status().String())
	}
}

// Start schedules the job.
func (j *OccupancyReconciliationJob) Start() error {
	if _, err := j.cron.AddJob(j.spec, j); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Occupancy reconciliation job started", "schedule", j.spec)
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *OccupancyReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Occupancy reconciliation job stopped")
}
