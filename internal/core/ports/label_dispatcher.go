package ports

import (
	"context"

	"skybroker/internal/core/domain/model/kernel"
)

// LabelDispatcher schedules a label fetch for a shipment that has just
// reached Paid. Dispatch is fire-and-forget from the payment flow's point of
// view: a failed or lost dispatch is repaired by the label recovery job.
type LabelDispatcher interface {
	Dispatch(ctx context.Context, shipmentID kernel.UUID)
}
