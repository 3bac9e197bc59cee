package payment

import (
	"errors"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment records a single payment attempt for a shipment. A shipment may
// accumulate several attempts over time, but at most one of them is Pending;
// starting a payment while a Pending attempt exists reuses that attempt.
type Payment struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	provider    string
	amountPLN   float64
	status      Status
	externalRef string
	createdAt   time.Time
	settledAt   *time.Time

	isConstructed bool
}

// NewPayment creates a Pending payment attempt for a shipment.
func NewPayment(id kernel.UUID, shipmentID kernel.UUID, provider string, amountPLN float64) (*Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if provider == "" {
		return nil, errs.NewValueIsRequiredError("payment provider")
	}
	if amountPLN <= 0 {
		return nil, errs.NewValueIsInvalidError("payment amount")
	}

	return &Payment{
		id:            id,
		shipmentID:    shipmentID,
		provider:      provider,
		amountPLN:     amountPLN,
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(
	id kernel.UUID,
	shipmentID kernel.UUID,
	provider string,
	amountPLN float64,
	status Status,
	externalRef string,
	createdAt time.Time,
	settledAt *time.Time,
) (*Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		shipmentID:    shipmentID,
		provider:      provider,
		amountPLN:     amountPLN,
		status:        status,
		externalRef:   externalRef,
		createdAt:     createdAt,
		settledAt:     settledAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// ShipmentID returns the shipment this attempt belongs to.
func (p *Payment) ShipmentID() kernel.UUID { return p.shipmentID }

// Provider returns the payment provider identifier.
func (p *Payment) Provider() string { return p.provider }

// AmountPLN returns the charged amount.
func (p *Payment) AmountPLN() float64 { return p.amountPLN }

// Status returns the current status of the attempt.
func (p *Payment) Status() Status { return p.status }

// ExternalRef returns the provider-side transaction reference, if reported.
func (p *Payment) ExternalRef() string { return p.externalRef }

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// SettledAt returns the settlement timestamp, or nil while Pending.
func (p *Payment) SettledAt() *time.Time { return p.settledAt }

// IsActive reports whether the attempt is still Pending.
func (p *Payment) IsActive() bool { return p.status == Pending }

func (p *Payment) settle(to Status, externalRef string) error {
	next, err := p.status.TransitionTo(to)
	if err != nil {
		return err
	}
	if next == p.status {
		return nil
	}
	p.status = next
	if externalRef != "" {
		p.externalRef = externalRef
	}
	now := time.Now().UTC()
	p.settledAt = &now
	return nil
}

// MarkPaid settles the attempt as Paid. Duplicate confirmations are no-ops.
func (p *Payment) MarkPaid(externalRef string) error {
	return p.settle(Paid, externalRef)
}

// MarkFailed settles the attempt as Failed.
func (p *Payment) MarkFailed(externalRef string) error {
	return p.settle(Failed, externalRef)
}

// MarkCancelled settles the attempt as Cancelled.
func (p *Payment) MarkCancelled() error {
	return p.settle(Cancelled, "")
}
