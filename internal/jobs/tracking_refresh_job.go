package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"skybroker/internal/core/application/usecases/commands"
)

// trackingRefreshSchedule polls carrier tracking every five minutes.
const trackingRefreshSchedule = "0 */5 * * * *"

// TrackingRefreshJob periodically pulls carrier tracking for every active,
// carrier-linked shipment. One shipment's failure never stops the sweep.
type TrackingRefreshJob struct {
	uowFactory commands.ShipmentUoWFactory
	handler    commands.RefreshTrackingCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewTrackingRefreshJob creates a job refreshing tracking for active shipments.
func NewTrackingRefreshJob(
	uowFactory commands.ShipmentUoWFactory,
	handler commands.RefreshTrackingCommandHandler,
	logger *slog.Logger,
) *TrackingRefreshJob {
	return &TrackingRefreshJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "tracking_refresh_job"),
	}
}

// Start begins the tracking refresh on its schedule.
func (j *TrackingRefreshJob) Start() error {
	_, err := j.cron.AddFunc(trackingRefreshSchedule, func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Tracking refresh sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking refresh job started (running every five minutes)")
	return nil
}

// Stop stops the tracking refresh job.
func (j *TrackingRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking refresh job stopped")
}

func (j *TrackingRefreshJob) sweep(ctx context.Context) error {
	uow := j.uowFactory.Create()
	active, err := uow.ShipmentRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range active {
		cmd, err := commands.NewRefreshTrackingCommand(aggregate.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Tracking refresh rejected",
				"shipment_id", aggregate.ID(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.WarnContext(ctx, "Tracking refresh failed for shipment",
				"shipment_id", aggregate.ID(), "error", err)
		}
	}
	return nil
}
