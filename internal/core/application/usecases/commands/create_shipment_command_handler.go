package commands

import (
	"context"
	"errors"
	"log/slog"

	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// CreateShipmentCommandHandler handles shipment registration. The shipment is
// persisted in Draft status first; carrier creation runs afterwards as a
// separate transaction so a carrier outage never loses the shipment.
//
// A carrier API failure or an unsupported service degrades to success: the
// shipment stays Draft and linking can be retried later. A carrier code with
// no wired gateway is a configuration problem and propagates as an error.
type CreateShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	linkHandler LinkCarrierCommandHandler
	logger      *slog.Logger
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	linkHandler LinkCarrierCommandHandler,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:  uowFactory,
		linkHandler: linkHandler,
		logger:      logger,
	}
}

// Handle processes the shipment creation command.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), cmd.ServiceCode(),
		cmd.Sender(), cmd.Receiver(), cmd.Parcel(),
		cmd.Reference(), cmd.PickupPointID(), cmd.Metadata())
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

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	linkCmd, err := NewLinkCarrierCommand(cmd.ShipmentID(), cmd.CarrierCode())
	if err != nil {
		return err
	}

	if err = h.linkHandler.Handle(ctx, linkCmd); err != nil {
		if errors.Is(err, ports.ErrCarrierAPI) || errors.Is(err, ports.ErrUnsupportedService) {
			h.logger.WarnContext(ctx, "carrier creation failed, shipment stays in draft",
				"shipment_id", cmd.ShipmentID().String(),
				"carrier", cmd.CarrierCode().String(),
				"error", err)
			return nil
		}
		return err
	}

	return nil
}
