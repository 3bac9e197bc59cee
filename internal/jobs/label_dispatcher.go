package jobs

import (
	"context"
	"log/slog"

	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
)

// SyncLabelDispatcher is the immediate implementation of the label dispatcher
// port: it runs the label fetch in-line when a shipment reaches Paid. A failed
// fetch is only logged; the shipment stays Paid and the recovery job retries.
type SyncLabelDispatcher struct {
	handler commands.FetchLabelCommandHandler
	logger  *slog.Logger
}

// NewSyncLabelDispatcher creates a dispatcher executing fetches immediately.
func NewSyncLabelDispatcher(handler commands.FetchLabelCommandHandler, logger *slog.Logger) *SyncLabelDispatcher {
	return &SyncLabelDispatcher{
		handler: handler,
		logger:  logger.With("component", "label_dispatcher"),
	}
}

// Dispatch fetches the label for a shipment in the default format.
func (d *SyncLabelDispatcher) Dispatch(ctx context.Context, shipmentID kernel.UUID) {
	cmd, err := commands.NewFetchLabelCommand(shipmentID, label.FormatA6)
	if err != nil {
		d.logger.ErrorContext(ctx, "Label dispatch rejected", "shipment_id", shipmentID, "error", err)
		return
	}

	if err := d.handler.Handle(ctx, cmd); err != nil {
		d.logger.WarnContext(ctx, "Label fetch failed, leaving shipment for recovery",
			"shipment_id", shipmentID, "error", err)
	}
}
