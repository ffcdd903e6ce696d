// Package jobs provides scheduled background tasks for the freight system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipment pipeline.
//
// # Available Jobs
//
// 1. StagingSweepJob - Runs every minute to return staging records stuck in
// Processing back to PendingPayment for manual reprocessing
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(resetStuckStagingHandler, time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The sweep logs every reset record at warning level for operational
// follow-up; it never retries materialization on its own
// - Failed job starts will stop any already running jobs
package jobs
