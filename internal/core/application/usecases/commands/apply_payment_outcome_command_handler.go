package commands

import (
	"context"
	"log/slog"

	"skybroker/internal/core/domain/model/payment"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// ApplyPaymentOutcomeCommandHandler reconciles a provider payment report with
// the shipment lifecycle. Settlement is idempotent end to end: a duplicate
// PAID report settles an already Paid attempt as a no-op and leaves the
// shipment untouched, so at-least-once webhook delivery is safe.
//
// A CANCELLED report cancels the attempt and takes the shipment's Cancelled
// edge when one exists from the current state; a shipment already past the
// point of cancellation keeps its status. A FAILED report settles only the
// attempt: the shipment stays in PendingPayment for a retry.
//
// When a confirmation lands the shipment in Paid, a label fetch is
// dispatched. Dispatch is fire-and-forget; the label recovery job repairs
// lost dispatches.
type ApplyPaymentOutcomeCommandHandler struct {
	uowFactory PaymentUoWFactory
	dispatcher ports.LabelDispatcher
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewApplyPaymentOutcomeCommandHandler creates a handler for payment reports.
func NewApplyPaymentOutcomeCommandHandler(
	uowFactory PaymentUoWFactory,
	dispatcher ports.LabelDispatcher,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ApplyPaymentOutcomeCommandHandler {
	return ApplyPaymentOutcomeCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the payment outcome command.
func (h *ApplyPaymentOutcomeCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentOutcomeCommand) error {
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

	paymentRepo := uow.PaymentRepository()
	attempt, err := paymentRepo.GetLatestByShipment(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = h.settleAttempt(attempt, cmd); err != nil {
		return err
	}

	if err = paymentRepo.Update(ctx, attempt); err != nil {
		return err
	}

	previousStatus := aggregate.Status()
	if cmd.Outcome() == payment.Paid && previousStatus.CanTransitionTo(shipment.Paid) {
		if err = aggregate.MarkPaid(); err != nil {
			return err
		}
		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if cmd.Outcome() == payment.Cancelled && previousStatus.CanTransitionTo(shipment.Cancelled) {
		if err = aggregate.Cancel(); err != nil {
			return err
		}
		if err = shipmentRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate.ID(), previousStatus, aggregate.Status())

	// Dispatch while resting in Paid, not only on the Paid edge, so a
	// redelivered confirmation can also repair a lost label fetch.
	if aggregate.Status() == shipment.Paid && h.dispatcher != nil {
		h.dispatcher.Dispatch(ctx, aggregate.ID())
	}

	return nil
}

func (h *ApplyPaymentOutcomeCommandHandler) settleAttempt(attempt *payment.Payment, cmd ApplyPaymentOutcomeCommand) error {
	switch cmd.Outcome() {
	case payment.Paid:
		return attempt.MarkPaid(cmd.ExternalRef())
	case payment.Failed:
		return attempt.MarkFailed(cmd.ExternalRef())
	default:
		return attempt.MarkCancelled()
	}
}
