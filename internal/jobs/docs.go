// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StockReconciliationJob - Periodically credits stock back for orders that
// were canceled without going through the transactional cancel path (manual
// status edits, imports). The normal cancel flow releases stock in the same
// transaction, so under regular operation the sweep finds nothing.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reconciliation handler skips and logs per-order failures itself; the
// job only logs failures of the sweep as a whole.
package jobs
