package ports

import (
	"context"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Updates are guarded by optimistic concurrency: a stale aggregate version
// fails with errs.VersionIsInvalidError instead of overwriting newer state.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	// Fails with errs.VersionIsInvalidError when the stored version no longer
	// matches the aggregate's loaded version.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllInStatus retrieves all shipments currently in the given status.
	// Used by background jobs to find work (label recovery, tracking refresh).
	GetAllInStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error)

	// GetAllActive retrieves all shipments in non-terminal statuses that are
	// linked to a carrier, for tracking refresh.
	GetAllActive(ctx context.Context) ([]*shipment.Shipment, error)
}
