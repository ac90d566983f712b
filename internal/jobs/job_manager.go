package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultHeartbeatSchedule = "*/30 * * * * *"
	DefaultReconcileSchedule = "0 * * * * *"

	runTimeout = 30 * time.Second
)

// Schedules holds the cron expressions of the jobs. Empty fields fall back to defaults.
type Schedules struct {
	StatisticsHeartbeat string
	OccupancyReconcile  string
}

func (s Schedules) withDefaults() Schedules {
	if s.StatisticsHeartbeat == "" {
		s.StatisticsHeartbeat = DefaultHeartbeatSchedule
	}
	if s.OccupancyReconcile == "" {
		s.OccupancyReconcile = DefaultReconcileSchedule
	}
	return s
}

// newCron returns a seconds-resolution scheduler that never overlaps runs of one job.
func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	heartbeatJob *StatisticsHeartbeatJob
	reconcileJob *OccupancyReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	refresher StatisticsRefresher,
	reconciler OccupancyReconciler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	schedules = schedules.withDefaults()
	return &JobManager{
		heartbeatJob: NewStatisticsHeartbeatJob(refresher, schedules.StatisticsHeartbeat, logger),
		reconcileJob: NewOccupancyReconciliationJob(reconciler, schedules.OccupancyReconcile, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.heartbeatJob.Start(); err != nil {
		return fmt.Errorf("failed to start statistics heartbeat job: %w", err)
	}

	if err := jm.reconcileJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.heartbeatJob.Stop()
		return fmt.Errorf("failed to start occupancy reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconcileJob.Stop()
	jm.heartbeatJob.Stop()
}
