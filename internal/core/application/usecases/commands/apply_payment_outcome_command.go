package commands

import (
	"errors"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/payment"
	"skybroker/internal/pkg/guard"
)

var (
	ErrApplyPaymentOutcomeCommandIsNotConstructed = errors.New(
		"ApplyPaymentOutcomeCommand must be created via NewApplyPaymentOutcomeCommand constructor",
	)
	ErrOutcomeIsNotTerminal = errors.New("payment outcome must be PAID, FAILED or CANCELLED")
)

// ApplyPaymentOutcomeCommand represents a provider report about a payment
// attempt: confirmation, failure or cancellation. Reports arrive from
// webhooks and from the payment simulator and may be delivered more than
// once.
type ApplyPaymentOutcomeCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	outcome     payment.Status
	externalRef string

	guard guard.ConstructorGuard
}

// NewApplyPaymentOutcomeCommand creates a command carrying a payment outcome.
// The outcome must be one of the terminal payment statuses.
func NewApplyPaymentOutcomeCommand(shipmentID kernel.UUID, outcome payment.Status,
	externalRef string) (ApplyPaymentOutcomeCommand, error) {
	cmd := ApplyPaymentOutcomeCommand{
		externalRef: externalRef,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setOutcome(outcome),
	); err != nil {
		return ApplyPaymentOutcomeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyPaymentOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentOutcomeCommandIsNotConstructed)
}

// ShipmentID returns the shipment the report is about.
func (c ApplyPaymentOutcomeCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// Outcome returns the reported terminal payment status.
func (c ApplyPaymentOutcomeCommand) Outcome() payment.Status { return c.outcome }

// ExternalRef returns the provider-side transaction reference, if any.
func (c ApplyPaymentOutcomeCommand) ExternalRef() string { return c.externalRef }

func (c *ApplyPaymentOutcomeCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ApplyPaymentOutcomeCommand) setOutcome(outcome payment.Status) error {
	if err := outcome.Validate(); err != nil {
		return err
	}
	if !outcome.IsTerminal() {
		return ErrOutcomeIsNotTerminal
	}

	c.outcome = outcome
	return nil
}
