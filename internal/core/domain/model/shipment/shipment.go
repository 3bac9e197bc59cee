package shipment

import (
	"errors"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through NewShipment or RestoreShipment. This ensures all shipments are validated.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrCarrierAlreadyLinked is returned when LinkCarrier is invoked on a shipment
	// that already carries a different carrier shipment id. Carrier creation is not
	// idempotent on the carrier side, so re-linking is forbidden by the aggregate.
	ErrCarrierAlreadyLinked = errors.New("shipment is already linked to a carrier shipment")
)

// Shipment is the aggregate root of the brokerage domain. It owns the status
// lifecycle, the carrier linkage, the addresses and the parcel description.
//
// Invariants:
//   - status is always a member of the Status enum and changes only through
//     the transition table (changeStatus is the single mutation path)
//   - carrierShipmentID and trackingNumber are set only by a successful
//     carrier-create flow, never cleared afterwards
//   - shipments are never hard-deleted; cancellation is the Cancelled status
//
// The version field is the optimistic-concurrency token: repositories
// compare-and-set it on every update so racing writers (payment webhooks,
// label jobs, user actions) cannot silently overwrite each other.
type Shipment struct {
	id                kernel.UUID
	status            Status
	serviceCode       string
	reference         string
	pickupPointID     string
	carrierCode       *CarrierCode
	carrierShipmentID *string
	trackingNumber    *string
	pricePLN          *float64
	sender            Address
	receiver          Address
	parcel            Parcel
	metadata          map[string]any
	version           int
	createdAt         time.Time

	isConstructed bool
}

// NewShipment creates a shipment in Draft status. Reference and pickupPointID
// are optional merchant-supplied fields; metadata carries peripheral request
// attributes (COD amount, insurance amount) that the broker stores but does
// not interpret.
func NewShipment(
	id kernel.UUID,
	serviceCode string,
	sender Address,
	receiver Address,
	parcel Parcel,
	reference string,
	pickupPointID string,
	metadata map[string]any,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if serviceCode == "" {
		return nil, errs.NewValueIsRequiredError("service code")
	}
	if err := sender.Validate(); err != nil {
		return nil, err
	}
	if err := receiver.Validate(); err != nil {
		return nil, err
	}
	if err := parcel.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:            id,
		status:        Draft,
		serviceCode:   serviceCode,
		reference:     reference,
		pickupPointID: pickupPointID,
		sender:        sender,
		receiver:      receiver,
		parcel:        parcel,
		metadata:      metadata,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreShipment reconstructs a shipment from persistence. It trusts the
// stored field combination but still rejects invalid statuses and ids so a
// corrupted row cannot produce a usable aggregate.
func RestoreShipment(
	id kernel.UUID,
	status Status,
	serviceCode string,
	reference string,
	pickupPointID string,
	carrierCode *CarrierCode,
	carrierShipmentID *string,
	trackingNumber *string,
	pricePLN *float64,
	sender Address,
	receiver Address,
	parcel Parcel,
	metadata map[string]any,
	version int,
	createdAt time.Time,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:                id,
		status:            status,
		serviceCode:       serviceCode,
		reference:         reference,
		pickupPointID:     pickupPointID,
		carrierCode:       carrierCode,
		carrierShipmentID: carrierShipmentID,
		trackingNumber:    trackingNumber,
		pricePLN:          pricePLN,
		sender:            sender,
		receiver:          receiver,
		parcel:            parcel,
		metadata:          metadata,
		version:           version,
		createdAt:         createdAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status { return s.status }

// ServiceCode returns the internal service code requested by the merchant.
func (s *Shipment) ServiceCode() string { return s.serviceCode }

// Reference returns the optional merchant reference.
func (s *Shipment) Reference() string { return s.reference }

// PickupPointID returns the optional target pickup point identifier.
func (s *Shipment) PickupPointID() string { return s.pickupPointID }

// CarrierCode returns the assigned carrier, or nil before linking.
func (s *Shipment) CarrierCode() *CarrierCode { return s.carrierCode }

// CarrierShipmentID returns the carrier-side shipment id, or nil before linking.
func (s *Shipment) CarrierShipmentID() *string { return s.carrierShipmentID }

// TrackingNumber returns the tracking number, or nil when not yet assigned.
func (s *Shipment) TrackingNumber() *string { return s.trackingNumber }

// PricePLN returns the selected offer price, or nil before an offer is selected.
func (s *Shipment) PricePLN() *float64 { return s.pricePLN }

// Sender returns the sender address block.
func (s *Shipment) Sender() Address { return s.sender }

// Receiver returns the receiver address block.
func (s *Shipment) Receiver() Address { return s.receiver }

// Parcel returns the physical parcel description.
func (s *Shipment) Parcel() Parcel { return s.parcel }

// Metadata returns the free-form metadata map (may be nil).
func (s *Shipment) Metadata() map[string]any { return s.metadata }

// Version returns the optimistic-concurrency token of the loaded aggregate.
func (s *Shipment) Version() int { return s.version }

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// IsCarrierLinked reports whether carrier identifiers have been persisted.
func (s *Shipment) IsCarrierLinked() bool {
	return s.carrierShipmentID != nil && *s.carrierShipmentID != ""
}

// IsEqual compares two shipments by identity.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// changeStatus is the only path that mutates status. Every business method
// below goes through it, so a write that bypasses the transition table cannot
// be expressed outside this package.
func (s *Shipment) changeStatus(to Status) error {
	next, err := s.status.TransitionTo(to)
	if err != nil {
		return err
	}
	s.status = next
	return nil
}

// LinkCarrier records the outcome of a successful carrier-create flow and
// transitions Draft -> Created. Calling it again with the same carrier
// shipment id is a no-op; calling it with a different id fails with
// ErrCarrierAlreadyLinked because carrier creation must not be re-invoked
// once identifiers exist.
func (s *Shipment) LinkCarrier(code CarrierCode, carrierShipmentID string, trackingNumber string, pricePLN *float64) error {
	if carrierShipmentID == "" {
		return errs.NewValueIsRequiredError("carrier shipment id")
	}
	if err := code.Validate(); err != nil {
		return err
	}
	if s.IsCarrierLinked() {
		if *s.carrierShipmentID == carrierShipmentID {
			return nil
		}
		return ErrCarrierAlreadyLinked
	}

	if err := s.changeStatus(Created); err != nil {
		return err
	}

	s.carrierCode = &code
	s.carrierShipmentID = &carrierShipmentID
	if trackingNumber != "" {
		s.trackingNumber = &trackingNumber
	}
	if pricePLN != nil {
		s.pricePLN = pricePLN
	}
	return nil
}

// StartPayment transitions the shipment into PendingPayment.
// Allowed from Draft (carrier linking can happen later) and Created.
func (s *Shipment) StartPayment() error {
	return s.changeStatus(PendingPayment)
}

// MarkPaid transitions PendingPayment -> Paid.
func (s *Shipment) MarkPaid() error {
	return s.changeStatus(Paid)
}

// MarkLabelReady transitions Paid -> LabelReady. A shipment that already has
// a label re-fetched is LabelReady -> LabelReady, which is a no-op success.
func (s *Shipment) MarkLabelReady() error {
	return s.changeStatus(LabelReady)
}

// MarkManifested transitions LabelReady -> Manifested.
func (s *Shipment) MarkManifested() error {
	return s.changeStatus(Manifested)
}

// MarkShipped transitions Manifested -> Shipped.
func (s *Shipment) MarkShipped() error {
	return s.changeStatus(Shipped)
}

// MarkDelivered transitions Shipped -> Delivered (terminal).
func (s *Shipment) MarkDelivered() error {
	return s.changeStatus(Delivered)
}

// MarkReturned transitions Shipped -> Returned (terminal).
func (s *Shipment) MarkReturned() error {
	return s.changeStatus(Returned)
}

// Cancel transitions the shipment to Cancelled (terminal). Allowed from
// every pre-label status; a manifested or shipped parcel cannot be cancelled.
func (s *Shipment) Cancel() error {
	return s.changeStatus(Cancelled)
}
