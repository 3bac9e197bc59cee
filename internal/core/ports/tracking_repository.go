package ports

import (
	"context"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for the append-only
// tracking event history.
type TrackingRepository interface {
	// Add appends a tracking event to a shipment's history.
	Add(ctx context.Context, event *tracking.Event) error

	// GetByShipment retrieves a shipment's tracking history ordered by
	// occurrence time, oldest first.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.Event, error)
}
