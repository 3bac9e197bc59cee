package queries

import (
	"errors"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves a shipment's tracking event history.
type GetTrackingQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for a shipment's tracking history.
func NewGetTrackingQuery(shipmentID kernel.UUID) (GetTrackingQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// ShipmentID returns the shipment whose history is requested.
func (q GetTrackingQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetTrackingQueryResponse is one tracking report in the history.
type GetTrackingQueryResponse struct {
	Status      string
	Description string
	Location    string
	OccurredAt  time.Time
}
