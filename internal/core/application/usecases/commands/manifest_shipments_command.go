package commands

import (
	"errors"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/pkg/guard"
)

var (
	ErrManifestShipmentsCommandIsNotConstructed = errors.New(
		"ManifestShipmentsCommand must be created via NewManifestShipmentsCommand constructor",
	)
	ErrManifestShipmentsAreRequired = errors.New("at least one shipment is required for a manifest")
)

// ManifestShipmentsCommand represents a request to hand a batch of
// label-ready shipments over to a carrier in one manifest.
type ManifestShipmentsCommand struct { //nolint:recvcheck //using for validation
	manifestID  kernel.UUID
	carrierCode shipment.CarrierCode
	shipmentIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewManifestShipmentsCommand creates a command to manifest a shipment batch.
func NewManifestShipmentsCommand(manifestID kernel.UUID, carrierCode shipment.CarrierCode,
	shipmentIDs []kernel.UUID) (ManifestShipmentsCommand, error) {
	cmd := ManifestShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setManifestID(manifestID),
		cmd.setCarrierCode(carrierCode),
		cmd.setShipmentIDs(shipmentIDs),
	); err != nil {
		return ManifestShipmentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ManifestShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrManifestShipmentsCommandIsNotConstructed)
}

// ManifestID returns the id to assign to the new manifest.
func (c ManifestShipmentsCommand) ManifestID() kernel.UUID { return c.manifestID }

// CarrierCode returns the carrier to hand the batch to.
func (c ManifestShipmentsCommand) CarrierCode() shipment.CarrierCode { return c.carrierCode }

// ShipmentIDs returns the shipments to include in the manifest.
func (c ManifestShipmentsCommand) ShipmentIDs() []kernel.UUID { return c.shipmentIDs }

func (c *ManifestShipmentsCommand) setManifestID(manifestID kernel.UUID) error {
	if err := manifestID.Validate(); err != nil {
		return err
	}

	c.manifestID = manifestID
	return nil
}

func (c *ManifestShipmentsCommand) setCarrierCode(carrierCode shipment.CarrierCode) error {
	if err := carrierCode.Validate(); err != nil {
		return err
	}

	c.carrierCode = carrierCode
	return nil
}

func (c *ManifestShipmentsCommand) setShipmentIDs(shipmentIDs []kernel.UUID) error {
	if len(shipmentIDs) == 0 {
		return ErrManifestShipmentsAreRequired
	}
	for _, id := range shipmentIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.shipmentIDs = shipmentIDs
	return nil
}
