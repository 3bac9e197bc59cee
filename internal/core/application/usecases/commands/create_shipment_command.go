package commands

import (
	"errors"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrServiceCodeIsRequired = errors.New("service code is required")
)

// CreateShipmentCommand represents a request to register a new shipment and
// attempt its carrier-side creation.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID    kernel.UUID
	serviceCode   string
	carrierCode   shipment.CarrierCode
	sender        shipment.Address
	receiver      shipment.Address
	parcel        shipment.Parcel
	reference     string
	pickupPointID string
	metadata      map[string]any

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Carrier code, addresses and the parcel must already be parsed value
// objects; reference, pickupPointID and metadata are optional.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	serviceCode string,
	carrierCode shipment.CarrierCode,
	sender shipment.Address,
	receiver shipment.Address,
	parcel shipment.Parcel,
	reference string,
	pickupPointID string,
	metadata map[string]any,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		reference:     reference,
		pickupPointID: pickupPointID,
		metadata:      metadata,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setServiceCode(serviceCode),
		cmd.setCarrierCode(carrierCode),
		cmd.setSender(sender),
		cmd.setReceiver(receiver),
		cmd.setParcel(parcel),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// ServiceCode returns the requested internal service code.
func (c CreateShipmentCommand) ServiceCode() string { return c.serviceCode }

// CarrierCode returns the carrier to create the shipment with.
func (c CreateShipmentCommand) CarrierCode() shipment.CarrierCode { return c.carrierCode }

// Sender returns the sender address.
func (c CreateShipmentCommand) Sender() shipment.Address { return c.sender }

// Receiver returns the receiver address.
func (c CreateShipmentCommand) Receiver() shipment.Address { return c.receiver }

// Parcel returns the parcel description.
func (c CreateShipmentCommand) Parcel() shipment.Parcel { return c.parcel }

// Reference returns the optional merchant reference.
func (c CreateShipmentCommand) Reference() string { return c.reference }

// PickupPointID returns the optional target pickup point.
func (c CreateShipmentCommand) PickupPointID() string { return c.pickupPointID }

// Metadata returns the optional free-form metadata.
func (c CreateShipmentCommand) Metadata() map[string]any { return c.metadata }

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setServiceCode(serviceCode string) error {
	if serviceCode == "" {
		return ErrServiceCodeIsRequired
	}

	c.serviceCode = serviceCode
	return nil
}

func (c *CreateShipmentCommand) setCarrierCode(carrierCode shipment.CarrierCode) error {
	if err := carrierCode.Validate(); err != nil {
		return err
	}

	c.carrierCode = carrierCode
	return nil
}

func (c *CreateShipmentCommand) setSender(sender shipment.Address) error {
	if err := sender.Validate(); err != nil {
		return err
	}

	c.sender = sender
	return nil
}

func (c *CreateShipmentCommand) setReceiver(receiver shipment.Address) error {
	if err := receiver.Validate(); err != nil {
		return err
	}

	c.receiver = receiver
	return nil
}

func (c *CreateShipmentCommand) setParcel(parcel shipment.Parcel) error {
	if err := parcel.Validate(); err != nil {
		return err
	}

	c.parcel = parcel
	return nil
}
