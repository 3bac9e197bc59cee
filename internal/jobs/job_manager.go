package jobs

import (
	"fmt"
	"log/slog"

	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	labelRecoveryJob   *LabelRecoveryJob
	trackingRefreshJob *TrackingRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	uowFactory commands.ShipmentUoWFactory,
	dispatcher ports.LabelDispatcher,
	refreshHandler commands.RefreshTrackingCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		labelRecoveryJob:   NewLabelRecoveryJob(uowFactory, dispatcher, logger),
		trackingRefreshJob: NewTrackingRefreshJob(uowFactory, refreshHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.labelRecoveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start label recovery job: %w", err)
	}

	if err := jm.trackingRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.labelRecoveryJob.Stop()
		return fmt.Errorf("failed to start tracking refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingRefreshJob.Stop()
	jm.labelRecoveryJob.Stop()
}
