// Package jobs provides scheduled background tasks for the restaurant service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Both jobs repair what post-commit notifications can miss.
//
// # Available Jobs
//
// 1. StatisticsHeartbeatJob - recomputes the statistics snapshot and publishes
// statistics.updated (default every 30 seconds)
// 2. OccupancyReconciliationJob - re-derives every table's occupancy from its active
// orders and publishes table.statusUpdated for each corrected table (default every minute)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(aggregator, reconcileHandler, jobs.Schedules{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field, or descriptors
// such as "@every 45s". A run that is still going when its next tick fires is skipped.
//
// # Error Handling
//
// Failures are logged and the next tick tries again. Failed job starts stop any already
// running jobs.
package jobs
