package commands

import (
	"errors"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/pkg/guard"
)

var ErrFetchLabelCommandIsNotConstructed = errors.New(
	"FetchLabelCommand must be created via NewFetchLabelCommand constructor",
)

// FetchLabelCommand represents a request to fetch a shipment's label from its
// carrier and store it.
type FetchLabelCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	format     label.Format

	guard guard.ConstructorGuard
}

// NewFetchLabelCommand creates a command to fetch a label in the given format.
func NewFetchLabelCommand(shipmentID kernel.UUID, format label.Format) (FetchLabelCommand, error) {
	cmd := FetchLabelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setFormat(format),
	); err != nil {
		return FetchLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FetchLabelCommand) Validate() error {
	return c.guard.Validate(ErrFetchLabelCommandIsNotConstructed)
}

// ShipmentID returns the shipment to fetch a label for.
func (c FetchLabelCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// Format returns the requested label format.
func (c FetchLabelCommand) Format() label.Format { return c.format }

func (c *FetchLabelCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *FetchLabelCommand) setFormat(format label.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}

	c.format = format
	return nil
}
