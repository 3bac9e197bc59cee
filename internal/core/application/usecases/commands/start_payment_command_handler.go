package commands

import (
	"context"
	"errors"
	"log/slog"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/payment"
	"skybroker/internal/core/ports"
	"skybroker/internal/pkg/errs"
)

// ErrPaymentAmountIsUnknown is returned when neither the shipment nor the
// command carries an amount to charge.
var ErrPaymentAmountIsUnknown = errors.New("payment amount is unknown: no offer price and no override")

// StartPaymentCommandHandler moves a shipment into PendingPayment and opens a
// payment attempt. At most one attempt is active per shipment: a still
// Pending attempt is reused instead of opening a second one.
type StartPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewStartPaymentCommandHandler creates a handler for starting payments.
func NewStartPaymentCommandHandler(uowFactory PaymentUoWFactory,
	publisher ports.EventPublisher, logger *slog.Logger) StartPaymentCommandHandler {
	return StartPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the start payment command and returns the id of the
// active payment attempt, which is the command's PaymentID for a new attempt
// or the existing attempt's id when one is still Pending.
func (h *StartPaymentCommandHandler) Handle(ctx context.Context, cmd StartPaymentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return kernel.UUID{}, err
	}

	previousStatus := aggregate.Status()
	if err = aggregate.StartPayment(); err != nil {
		return kernel.UUID{}, err
	}

	paymentRepo := uow.PaymentRepository()
	latest, err := paymentRepo.GetLatestByShipment(ctx, cmd.ShipmentID())
	var notFoundErr *errs.ObjectNotFoundError
	switch {
	case err == nil && latest.IsActive():
		// Reuse the open attempt so duplicate start requests cannot
		// double-charge.
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return kernel.UUID{}, commitErr
		}
		return latest.ID(), nil
	case err != nil && !errors.As(err, &notFoundErr):
		return kernel.UUID{}, err
	}

	amount := cmd.AmountPLN()
	if amount == nil {
		amount = aggregate.PricePLN()
	}
	if amount == nil {
		return kernel.UUID{}, ErrPaymentAmountIsUnknown
	}

	attempt, err := payment.NewPayment(cmd.PaymentID(), cmd.ShipmentID(), cmd.Provider(), *amount)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = paymentRepo.Add(ctx, attempt); err != nil {
		return kernel.UUID{}, err
	}

	if previousStatus != aggregate.Status() {
		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate.ID(), previousStatus, aggregate.Status())
	return attempt.ID(), nil
}
