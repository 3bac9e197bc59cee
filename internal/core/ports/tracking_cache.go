package ports

import (
	"context"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/tracking"
)

// TrackingCache is a read-through cache in front of the tracking history.
// A miss or a cache failure falls back to the repository; the cache is never
// the source of truth.
type TrackingCache interface {
	// Get returns the cached history for a shipment, or ok=false on a miss.
	Get(ctx context.Context, shipmentID kernel.UUID) (events []*tracking.Event, ok bool, err error)

	// Set replaces the cached history for a shipment.
	Set(ctx context.Context, shipmentID kernel.UUID, events []*tracking.Event) error

	// Invalidate drops the cached history for a shipment.
	Invalidate(ctx context.Context, shipmentID kernel.UUID) error
}
