package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// labelRecoverySchedule re-dispatches stuck label fetches once a minute.
const labelRecoverySchedule = "0 * * * * *"

// LabelRecoveryJob re-dispatches label fetches for shipments resting in Paid.
// The dispatcher's at-least-once semantics make re-dispatch safe: a duplicate
// fetch stores a fresh label version and the latest one wins.
type LabelRecoveryJob struct {
	uowFactory commands.ShipmentUoWFactory
	dispatcher ports.LabelDispatcher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewLabelRecoveryJob creates a job that sweeps Paid shipments for missing labels.
func NewLabelRecoveryJob(
	uowFactory commands.ShipmentUoWFactory,
	dispatcher ports.LabelDispatcher,
	logger *slog.Logger,
) *LabelRecoveryJob {
	return &LabelRecoveryJob{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "label_recovery_job"),
	}
}

// Start begins the recovery sweep on its schedule.
func (j *LabelRecoveryJob) Start() error {
	_, err := j.cron.AddFunc(labelRecoverySchedule, func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Label recovery sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Label recovery job started (running every minute)")
	return nil
}

// Stop stops the recovery job.
func (j *LabelRecoveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Label recovery job stopped")
}

func (j *LabelRecoveryJob) sweep(ctx context.Context) error {
	uow := j.uowFactory.Create()
	stuck, err := uow.ShipmentRepository().GetAllInStatus(ctx, shipment.Paid)
	if err != nil {
		return err
	}

	for _, aggregate := range stuck {
		j.dispatcher.Dispatch(ctx, aggregate.ID())
	}
	return nil
}
