package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleIntakeSweepJob    *StaleIntakeSweepJob
	stockReconciliationJob *StockReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs. The
// sweeper actor is the identity the stale-intake cancellations run as.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	bulkUpdateHandler commands.BulkUpdateStatusCommandHandler,
	stockReader services.StockReader,
	sweeper actor.Context,
	staleIntakeMaxAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleIntakeSweepJob:    NewStaleIntakeSweepJob(uowFactory, bulkUpdateHandler, sweeper, staleIntakeMaxAge, logger),
		stockReconciliationJob: NewStockReconciliationJob(uowFactory, stockReader, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleIntakeSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale intake sweep job: %w", err)
	}

	if err := jm.stockReconciliationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleIntakeSweepJob.Stop()
		return fmt.Errorf("failed to start stock reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stockReconciliationJob.Stop()
	jm.staleIntakeSweepJob.Stop()
}
