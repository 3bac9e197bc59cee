package ports

import (
	"context"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
)

// LabelRepository defines the persistence contract for label records.
// Labels are immutable, so the contract has no Update.
type LabelRepository interface {
	// Add persists a new label record.
	Add(ctx context.Context, aggregate *label.Label) error

	// GetLatestByShipment retrieves the most recently stored label for a
	// shipment. Returns errs.ObjectNotFoundError when none exists.
	GetLatestByShipment(ctx context.Context, shipmentID kernel.UUID) (*label.Label, error)
}
