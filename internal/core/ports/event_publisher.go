package ports

import (
	"context"

	"skybroker/internal/core/domain/model/shipment"
)

// ShipmentStatusChanged is the integration event emitted after a shipment's
// status change is committed. Consumers are external systems; the broker's
// own flows never depend on these events.
type ShipmentStatusChanged struct {
	ShipmentID string `json:"shipment_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	OccurredAt string `json:"occurred_at"`
}

// EventPublisher is the outbound contract to the event stream. Publishing is
// best effort: callers log failures but never roll back the business change.
type EventPublisher interface {
	// PublishStatusChanged emits a status change event keyed by shipment id,
	// preserving per-shipment ordering.
	PublishStatusChanged(ctx context.Context, shipmentID string, from, to shipment.Status) error

	// Close releases the underlying connection.
	Close() error
}
