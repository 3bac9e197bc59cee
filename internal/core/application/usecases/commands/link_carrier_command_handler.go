package commands

import (
	"context"
	"log/slog"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// LinkCarrierCommandHandler runs the carrier creation flow for a shipment:
// resolve the gateway, drive the carrier's multi-step creation, persist the
// returned identifiers and move the shipment to Created.
//
// Carrier creation is not idempotent on the carrier side, so the handler
// never re-invokes it: a shipment that is already linked is a no-op success.
type LinkCarrierCommandHandler struct {
	uowFactory ShipmentUoWFactory
	registry   ports.CarrierRegistry
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewLinkCarrierCommandHandler creates a handler for carrier linking.
func NewLinkCarrierCommandHandler(
	uowFactory ShipmentUoWFactory,
	registry ports.CarrierRegistry,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) LinkCarrierCommandHandler {
	return LinkCarrierCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the carrier linking command. Typed errors cross this
// boundary unchanged: UnknownCarrierError, UnsupportedServiceError and
// CarrierAPIError from the gateway, ErrInvalidStatusTransition from the
// aggregate, VersionIsInvalidError from the repository.
func (h *LinkCarrierCommandHandler) Handle(ctx context.Context, cmd LinkCarrierCommand) error {
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
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if aggregate.IsCarrierLinked() {
		return nil
	}

	previousStatus := aggregate.Status()
	if !previousStatus.CanTransitionTo(shipment.Created) {
		_, transitionErr := previousStatus.TransitionTo(shipment.Created)
		return transitionErr
	}

	result, err := gateway.CreateShipment(ctx, aggregate)
	if err != nil {
		return err
	}

	if err = aggregate.LinkCarrier(cmd.CarrierCode(), result.CarrierShipmentID,
		result.TrackingNumber, result.PricePLN); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate.ID(), previousStatus, aggregate.Status())
	return nil
}

// publishStatusChanged emits a status change event after a committed
// transition. Publish failures are logged, never propagated: the business
// change already happened.
func publishStatusChanged(ctx context.Context, publisher ports.EventPublisher,
	logger *slog.Logger, shipmentID kernel.UUID, from, to shipment.Status) {
	if publisher == nil || from == to {
		return
	}
	if err := publisher.PublishStatusChanged(ctx, shipmentID.String(), from, to); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to publish status change event",
			"shipment_id", shipmentID.String(),
			"from", from.String(),
			"to", to.String(),
			"error", err)
	}
}
