package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StatisticsRefresher recomputes the statistics snapshot and publishes it.
type StatisticsRefresher interface {
	Refresh(ctx context.Context) error
}

// StatisticsHeartbeatJob republishes statistics.updated on a fixed schedule, so an
// observer that missed a post-commit publication is corrected within one interval.
type StatisticsHeartbeatJob struct {
	refresher StatisticsRefresher
	spec      string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStatisticsHeartbeatJob creates the heartbeat job. spec is a six-field cron expression
// (seconds first) or a descriptor such as "@every 30s".
func NewStatisticsHeartbeatJob(refresher StatisticsRefresher, spec string, logger *slog.Logger) *StatisticsHeartbeatJob {
	return &StatisticsHeartbeatJob{
		refresher: refresher,
		spec:      spec,
		cron:      newCron(),
		logger:    logger.With("component", "statistics_heartbeat_job"),
	}
}

// Run performs one refresh. It implements cron.Job.
func (j *StatisticsHeartbeatJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := j.refresher.Refresh(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Statistics heartbeat failed", "error", err)
	}
}

// Start schedules the job.
func (j *StatisticsHeartbeatJob) Start() error {
	if _, err := j.cron.AddJob(j.spec, j); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Statistics heartbeat job started", "schedule", j.spec)
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *StatisticsHeartbeatJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Statistics heartbeat job stopped")
}
