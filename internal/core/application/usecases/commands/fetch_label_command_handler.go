package commands

import (
	"context"
	"fmt"
	"log/slog"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// FetchLabelCommandHandler fetches a label document from the carrier, stores
// the bytes in the blob store, records the label and moves the shipment to
// LabelReady.
//
// The handler fails fast before any network call when the shipment has no
// carrier linkage or is not in a status eligible for labels.
type FetchLabelCommandHandler struct {
	uowFactory LabelUoWFactory
	registry   ports.CarrierRegistry
	store      ports.LabelStore
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewFetchLabelCommandHandler creates a handler for label fetching.
func NewFetchLabelCommandHandler(
	uowFactory LabelUoWFactory,
	registry ports.CarrierRegistry,
	store ports.LabelStore,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) FetchLabelCommandHandler {
	return FetchLabelCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		store:      store,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the label fetch command. Re-fetching for a shipment that
// is already LabelReady stores a fresh label version; the latest one wins.
func (h *FetchLabelCommandHandler) Handle(ctx context.Context, cmd FetchLabelCommand) error {
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

	if !aggregate.IsCarrierLinked() {
		return ports.ErrCarrierNotLinked
	}

	previousStatus := aggregate.Status()
	if !previousStatus.CanTransitionTo(shipment.LabelReady) {
		_, transitionErr := previousStatus.TransitionTo(shipment.LabelReady)
		return transitionErr
	}

	gateway, err := h.registry.Resolve(*aggregate.CarrierCode())
	if err != nil {
		return err
	}

	document, err := gateway.GetLabel(ctx, *aggregate.CarrierShipmentID(), cmd.Format())
	if err != nil {
		return err
	}

	labelID := kernel.NewUUID()
	storageKey := labelStorageKey(aggregate.ID(), labelID, document.Format)
	if err = h.store.Put(ctx, storageKey, document.Content, document.Format.MimeType()); err != nil {
		return err
	}

	record, err := label.NewLabel(labelID, aggregate.ID(), document.Format, storageKey)
	if err != nil {
		return err
	}

	if err = uow.LabelRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = aggregate.MarkLabelReady(); err != nil {
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

func labelStorageKey(shipmentID, labelID kernel.UUID, format label.Format) string {
	ext := "pdf"
	if format == label.FormatZPL {
		ext = "zpl"
	}
	return fmt.Sprintf("labels/%s/%s.%s", shipmentID.String(), labelID.String(), ext)
}
