package commands

import (
	"errors"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/pkg/guard"
)

var ErrLinkCarrierCommandIsNotConstructed = errors.New(
	"LinkCarrierCommand must be created via NewLinkCarrierCommand constructor",
)

// LinkCarrierCommand represents a request to create a shipment on the carrier
// side and link the returned identifiers to the local aggregate.
type LinkCarrierCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	carrierCode shipment.CarrierCode

	guard guard.ConstructorGuard
}

// NewLinkCarrierCommand creates a command to run the carrier creation flow
// for an existing shipment.
func NewLinkCarrierCommand(shipmentID kernel.UUID, carrierCode shipment.CarrierCode) (LinkCarrierCommand, error) {
	cmd := LinkCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCarrierCode(carrierCode),
	); err != nil {
		return LinkCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LinkCarrierCommand) Validate() error {
	return c.guard.Validate(ErrLinkCarrierCommandIsNotConstructed)
}

// ShipmentID returns the shipment to link.
func (c LinkCarrierCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// CarrierCode returns the carrier to link with.
func (c LinkCarrierCommand) CarrierCode() shipment.CarrierCode { return c.carrierCode }

func (c *LinkCarrierCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *LinkCarrierCommand) setCarrierCode(carrierCode shipment.CarrierCode) error {
	if err := carrierCode.Validate(); err != nil {
		return err
	}

	c.carrierCode = carrierCode
	return nil
}
