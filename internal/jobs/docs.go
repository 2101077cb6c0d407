// Package jobs provides scheduled background tasks for the order workflow.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping around the workflow engine.
//
// # Available Jobs
//
// 1. StaleIntakeSweepJob - Runs every five minutes and bulk-cancels orders
// that sat in intake past the configured age
// 2. StockReconciliationJob - Runs hourly and logs drift between the
// ledger's reserved quantities and the reservations implied by converted
// and on-hold orders
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, bulkUpdateHandler, stockReader, sweeper, maxAge, logger)
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
// - Both jobs log failures and wait for the next tick; a failed run never
// stops the schedule
// - The sweep reports per-order failures from the bulk handler as counts
// - Failed job starts will stop any already running jobs
package jobs
