package jobs

import (
	"fmt"
	"log/slog"

	"mealdrop/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stockReconciliationJob *StockReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reconcileHandler commands.ReconcileStockCommandHandler,
	reconcileSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stockReconciliationJob: NewStockReconciliationJob(
			reconcileHandler, reconcileSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stockReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start stock reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stockReconciliationJob.Stop()
}
