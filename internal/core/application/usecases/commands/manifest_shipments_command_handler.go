package commands

import (
	"context"
	"errors"
	"log/slog"

	"skybroker/internal/core/domain/model/manifest"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// ErrShipmentCarrierMismatch is returned when a batch member is linked to a
// different carrier than the manifest targets. Its carrier shipment id
// belongs to the other carrier's namespace and must never cross over.
var ErrShipmentCarrierMismatch = errors.New("shipment is linked to a different carrier")

// ManifestShipmentsCommandHandler creates a carrier handover manifest for a
// batch of label-ready shipments and moves each of them to Manifested.
//
// The batch is all-or-nothing: if any shipment is ineligible or the carrier
// call fails, no shipment changes status and no manifest is recorded.
type ManifestShipmentsCommandHandler struct {
	uowFactory ManifestUoWFactory
	registry   ports.CarrierRegistry
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewManifestShipmentsCommandHandler creates a handler for manifest creation.
func NewManifestShipmentsCommandHandler(
	uowFactory ManifestUoWFactory,
	registry ports.CarrierRegistry,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ManifestShipmentsCommandHandler {
	return ManifestShipmentsCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the manifest command.
func (h *ManifestShipmentsCommandHandler) Handle(ctx context.Context, cmd ManifestShipmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	gateway, err := h.registry.Resolve(cmd.CarrierCode())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregates := make([]*shipment.Shipment, 0, len(cmd.ShipmentIDs()))
	carrierShipmentIDs := make([]string, 0, len(cmd.ShipmentIDs()))
	for _, shipmentID := range cmd.ShipmentIDs() {
		aggregate, getErr := shipmentRepo.Get(ctx, shipmentID)
		if getErr != nil {
			return getErr
		}
		if !aggregate.IsCarrierLinked() {
			return ports.ErrCarrierNotLinked
		}
		if *aggregate.CarrierCode() != cmd.CarrierCode() {
			return ErrShipmentCarrierMismatch
		}
		if !aggregate.Status().CanTransitionTo(shipment.Manifested) {
			_, transitionErr := aggregate.Status().TransitionTo(shipment.Manifested)
			return transitionErr
		}

		aggregates = append(aggregates, aggregate)
		carrierShipmentIDs = append(carrierShipmentIDs, *aggregate.CarrierShipmentID())
	}

	result, err := gateway.Manifest(ctx, carrierShipmentIDs)
	if err != nil {
		return err
	}

	record, err := manifest.NewManifest(cmd.ManifestID(), cmd.CarrierCode().String(),
		result.CarrierManifestID, cmd.ShipmentIDs())
	if err != nil {
		return err
	}

	if err = uow.ManifestRepository().Add(ctx, record); err != nil {
		return err
	}

	previousStatuses := make([]shipment.Status, len(aggregates))
	for i, aggregate := range aggregates {
		previousStatuses[i] = aggregate.Status()
		if err = aggregate.MarkManifested(); err != nil {
			return err
		}
		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for i, aggregate := range aggregates {
		publishStatusChanged(ctx, h.publisher, h.logger, aggregate.ID(), previousStatuses[i], aggregate.Status())
	}
	return nil
}
