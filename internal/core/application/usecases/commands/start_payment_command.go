package commands

import (
	"errors"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/guard"
)

var (
	ErrStartPaymentCommandIsNotConstructed = errors.New(
		"StartPaymentCommand must be created via NewStartPaymentCommand constructor",
	)
	ErrPaymentProviderIsRequired = errors.New("payment provider is required")
)

// StartPaymentCommand represents a request to start a payment attempt for a
// shipment. PaymentID is the id for a newly created attempt; when a Pending
// attempt already exists it is reused and this id is discarded.
type StartPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID  kernel.UUID
	shipmentID kernel.UUID
	provider   string
	amountPLN  *float64

	guard guard.ConstructorGuard
}

// NewStartPaymentCommand creates a command to start a payment attempt.
// amountPLN overrides the shipment's offer price when provided.
func NewStartPaymentCommand(paymentID, shipmentID kernel.UUID, provider string,
	amountPLN *float64) (StartPaymentCommand, error) {
	cmd := StartPaymentCommand{
		amountPLN: amountPLN,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setShipmentID(shipmentID),
		cmd.setProvider(provider),
	); err != nil {
		return StartPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPaymentCommand) Validate() error {
	return c.guard.Validate(ErrStartPaymentCommandIsNotConstructed)
}

// PaymentID returns the id to assign to a newly created attempt.
func (c StartPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// ShipmentID returns the shipment to pay for.
func (c StartPaymentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// Provider returns the payment provider identifier.
func (c StartPaymentCommand) Provider() string { return c.provider }

// AmountPLN returns the optional amount override.
func (c StartPaymentCommand) AmountPLN() *float64 { return c.amountPLN }

func (c *StartPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *StartPaymentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *StartPaymentCommand) setProvider(provider string) error {
	if provider == "" {
		return ErrPaymentProviderIsRequired
	}

	c.provider = provider
	return nil
}
