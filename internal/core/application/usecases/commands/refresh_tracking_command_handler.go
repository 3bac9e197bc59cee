package commands

import (
	"context"
	"log/slog"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/domain/model/tracking"
	"skybroker/internal/core/ports"
)

// RefreshTrackingCommandHandler pulls the carrier's tracking history for a
// shipment, appends the reports not seen before and advances the shipment
// lifecycle when the carrier reports pickup, delivery or return.
//
// Carrier reports that would skip lifecycle steps are applied in order, so a
// batch containing both "shipped" and "delivered" walks the shipment through
// both statuses.
type RefreshTrackingCommandHandler struct {
	uowFactory TrackingUoWFactory
	registry   ports.CarrierRegistry
	cache      ports.TrackingCache
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRefreshTrackingCommandHandler creates a handler for tracking refresh.
func NewRefreshTrackingCommandHandler(
	uowFactory TrackingUoWFactory,
	registry ports.CarrierRegistry,
	cache ports.TrackingCache,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RefreshTrackingCommandHandler {
	return RefreshTrackingCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the tracking refresh command.
func (h *RefreshTrackingCommandHandler) Handle(ctx context.Context, cmd RefreshTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if !aggregate.IsCarrierLinked() || aggregate.TrackingNumber() == nil {
		return ports.ErrCarrierNotLinked
	}

	gateway, err := h.registry.Resolve(*aggregate.CarrierCode())
	if err != nil {
		return err
	}

	records, err := gateway.Track(ctx, *aggregate.TrackingNumber())
	if err != nil {
		return err
	}

	trackingRepo := uow.TrackingRepository()
	history, err := trackingRepo.GetByShipment(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(history))
	for _, event := range history {
		seen[eventKey(event.Status(), event.OccurredAt())] = true
	}

	previousStatus := aggregate.Status()
	appended := false
	for _, record := range records {
		if seen[eventKey(record.Status, record.OccurredAt)] {
			continue
		}

		event, eventErr := tracking.NewEvent(kernel.NewUUID(), aggregate.ID(),
			aggregate.CarrierCode().String(), record.Status,
			record.Description, record.Location, record.OccurredAt)
		if eventErr != nil {
			return eventErr
		}
		if err = trackingRepo.Add(ctx, event); err != nil {
			return err
		}
		appended = true

		if record.LifecycleStatus != shipment.Unknown &&
			aggregate.Status().CanTransitionTo(record.LifecycleStatus) {
			if err = h.advance(aggregate, record.LifecycleStatus); err != nil {
				return err
			}
		}
	}

	if aggregate.Status() != previousStatus {
		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if appended && h.cache != nil {
		if cacheErr := h.cache.Invalidate(ctx, aggregate.ID()); cacheErr != nil {
			h.logger.WarnContext(ctx, "failed to invalidate tracking cache",
				"shipment_id", aggregate.ID().String(), "error", cacheErr)
		}
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate.ID(), previousStatus, aggregate.Status())
	return nil
}

func (h *RefreshTrackingCommandHandler) advance(aggregate *shipment.Shipment, to shipment.Status) error {
	switch to {
	case shipment.Shipped:
		return aggregate.MarkShipped()
	case shipment.Delivered:
		return aggregate.MarkDelivered()
	case shipment.Returned:
		return aggregate.MarkReturned()
	default:
		// Carrier reports only drive the post-handover statuses.
		return nil
	}
}

func eventKey(status string, occurredAt time.Time) string {
	return status + "|" + occurredAt.UTC().Format(time.RFC3339)
}
