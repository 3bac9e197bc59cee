// Package jobs provides scheduled background tasks for the shipment broker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the broker.
//
// # Available Jobs
//
// 1. LabelRecoveryJob - Runs every minute to re-dispatch label fetches for shipments stuck in Paid
// 2. TrackingRefreshJob - Runs every five minutes to pull carrier tracking for active shipments
//
// The package also hosts SyncLabelDispatcher, the immediate implementation of
// the label dispatcher port used by the payment flow.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, dispatcher, refreshHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed dispatch or refresh for one shipment is logged and never stops the sweep
// - Label recovery relies on the fetch flow's at-least-once, latest-label-wins semantics
// - Failed job starts will stop any already running jobs
package jobs
