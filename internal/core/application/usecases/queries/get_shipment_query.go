// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return plain response
// structs; they never load or mutate aggregates.
package queries

import (
	"errors"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment by id.
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for a single shipment.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the requested shipment id.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentQueryResponse is the read model of one shipment.
type GetShipmentQueryResponse struct {
	ID                kernel.UUID
	Status            string
	ServiceCode       string
	Reference         string
	PickupPointID     string
	CarrierCode       *string
	CarrierShipmentID *string
	TrackingNumber    *string
	PricePLN          *float64
	CreatedAt         time.Time
}
