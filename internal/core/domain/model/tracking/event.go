// Package tracking contains the TrackingEvent entity. Events are an
// append-only history of carrier status reports for a shipment; the shipment
// aggregate derives its own status from them but they are never rewritten.
package tracking

import (
	"errors"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is a single carrier tracking report.
type Event struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	carrierCode string
	status      string
	description string
	location    string
	occurredAt  time.Time
	recordedAt  time.Time

	isConstructed bool
}

// NewEvent records a carrier tracking report. carrierCode and status carry
// the carrier's own vocabulary; mapping to the shipment lifecycle happens in
// the tracking refresh flow, not here.
func NewEvent(id kernel.UUID, shipmentID kernel.UUID, carrierCode, status,
	description, location string, occurredAt time.Time) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if carrierCode == "" {
		return nil, errs.NewValueIsRequiredError("tracking event carrier code")
	}
	if status == "" {
		return nil, errs.NewValueIsRequiredError("tracking event status")
	}
	if occurredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("tracking event occurred at")
	}

	return &Event{
		id:            id,
		shipmentID:    shipmentID,
		carrierCode:   carrierCode,
		status:        status,
		description:   description,
		location:      location,
		occurredAt:    occurredAt,
		recordedAt:    time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs a tracking event from persistence.
func RestoreEvent(id kernel.UUID, shipmentID kernel.UUID, carrierCode, status,
	description, location string, occurredAt, recordedAt time.Time) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	return &Event{
		id:            id,
		shipmentID:    shipmentID,
		carrierCode:   carrierCode,
		status:        status,
		description:   description,
		location:      location,
		occurredAt:    occurredAt,
		recordedAt:    recordedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID { return e.id }

// ShipmentID returns the shipment the event belongs to.
func (e *Event) ShipmentID() kernel.UUID { return e.shipmentID }

// CarrierCode returns the reporting carrier.
func (e *Event) CarrierCode() string { return e.carrierCode }

// Status returns the carrier's own status vocabulary for this report.
func (e *Event) Status() string { return e.status }

// Description returns the human-readable report text.
func (e *Event) Description() string { return e.description }

// Location returns the reported location, if any.
func (e *Event) Location() string { return e.location }

// OccurredAt returns when the carrier says the event happened.
func (e *Event) OccurredAt() time.Time { return e.occurredAt }

// RecordedAt returns when this system stored the event.
func (e *Event) RecordedAt() time.Time { return e.recordedAt }
