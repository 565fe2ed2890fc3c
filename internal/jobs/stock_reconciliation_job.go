package jobs

import (
	"context"
	"log/slog"

	"mealdrop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StockReconciliationJob sweeps CANCELED orders whose stock was never
// credited back and releases it. A safety net behind the transactional
// cancel path.
type StockReconciliationJob struct {
	handler  commands.ReconcileStockCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStockReconciliationJob creates the reconciliation job. schedule is a
// standard five-field cron expression.
func NewStockReconciliationJob(
	handler commands.ReconcileStockCommandHandler,
	schedule string,
	logger *slog.Logger,
) *StockReconciliationJob {
	return &StockReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "stock_reconciliation_job"),
	}
}

// Start schedules the reconciliation sweep.
func (j *StockReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileStockCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stock reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Stock reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *StockReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stock reconciliation job stopped")
}
