package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/payment"
	"skybroker/internal/core/domain/model/shipment"
)

func fixturePayment(t *testing.T, shipmentID kernel.UUID) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), shipmentID, "simulated", 12.99)
	require.NoError(t, err)
	return p
}

func TestApplyPaymentOutcomeCommandHandler_Handle_Paid(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.PendingPayment)
	attempt := fixturePayment(t, aggregate.ID())
	cmd, err := commands.NewApplyPaymentOutcomeCommand(aggregate.ID(), payment.Paid, "tx-1")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockPaymentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetLatestByShipment", mock.Anything, aggregate.ID()).Return(attempt, nil).Once(),
		paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once(),
		shipmentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockLabelDispatcher)
	dispatcher.On("Dispatch", mock.Anything, aggregate.ID()).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, aggregate.ID().String(),
		shipment.PendingPayment, shipment.Paid).Return(nil).Once()

	h := commands.NewApplyPaymentOutcomeCommandHandler(factory, dispatcher, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, shipment.Paid, aggregate.Status())
	require.Equal(t, payment.Paid, attempt.Status())
	require.Equal(t, "tx-1", attempt.ExternalRef())
	dispatcher.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestApplyPaymentOutcomeCommandHandler_Handle_DuplicatePaidIsHarmless(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.Paid)
	attempt := fixturePayment(t, aggregate.ID())
	require.NoError(t, attempt.MarkPaid("tx-1"))

	cmd, err := commands.NewApplyPaymentOutcomeCommand(aggregate.ID(), payment.Paid, "tx-1")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockPaymentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("PaymentRepository").Return(paymentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	paymentRepo.On("GetLatestByShipment", mock.Anything, aggregate.ID()).Return(attempt, nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()
	shipmentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Redelivery while resting in Paid re-dispatches the label fetch so a
	// lost dispatch gets repaired.
	dispatcher := new(MockLabelDispatcher)
	dispatcher.On("Dispatch", mock.Anything, aggregate.ID()).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewApplyPaymentOutcomeCommandHandler(factory, dispatcher, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, shipment.Paid, aggregate.Status())
	publisher.AssertNotCalled(t, "PublishStatusChanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyPaymentOutcomeCommandHandler_Handle_LatePaidAfterLabelReady(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.LabelReady)
	attempt := fixturePayment(t, aggregate.ID())
	require.NoError(t, attempt.MarkPaid("tx-1"))

	cmd, err := commands.NewApplyPaymentOutcomeCommand(aggregate.ID(), payment.Paid, "tx-1")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockPaymentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("PaymentRepository").Return(paymentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	paymentRepo.On("GetLatestByShipment", mock.Anything, aggregate.ID()).Return(attempt, nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockLabelDispatcher)

	h := commands.NewApplyPaymentOutcomeCommandHandler(factory, dispatcher, nil, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, shipment.LabelReady, aggregate.Status(), "late duplicate must not regress the shipment")
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestApplyPaymentOutcomeCommandHandler_Handle_FailedKeepsShipmentPending(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.PendingPayment)
	attempt := fixturePayment(t, aggregate.ID())

	cmd, err := commands.NewApplyPaymentOutcomeCommand(aggregate.ID(), payment.Failed, "tx-2")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockPaymentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("PaymentRepository").Return(paymentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	paymentRepo.On("GetLatestByShipment", mock.Anything, aggregate.ID()).Return(attempt, nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockLabelDispatcher)

	h := commands.NewApplyPaymentOutcomeCommandHandler(factory, dispatcher, nil, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, shipment.PendingPayment, aggregate.Status(),
		"a failed attempt leaves the shipment open for retry")
	require.Equal(t, payment.Failed, attempt.Status())
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestApplyPaymentOutcomeCommandHandler_Handle_CancelledCancelsShipment(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.PendingPayment)
	attempt := fixturePayment(t, aggregate.ID())

	cmd, err := commands.NewApplyPaymentOutcomeCommand(aggregate.ID(), payment.Cancelled, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockPaymentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetLatestByShipment", mock.Anything, aggregate.ID()).Return(attempt, nil).Once(),
		paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once(),
		shipmentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockLabelDispatcher)

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, aggregate.ID().String(),
		shipment.PendingPayment, shipment.Cancelled).Return(nil).Once()

	h := commands.NewApplyPaymentOutcomeCommandHandler(factory, dispatcher, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, shipment.Cancelled, aggregate.Status(),
		"an abandoned payment must close the shipment")
	require.Equal(t, payment.Cancelled, attempt.Status())
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}

func TestApplyPaymentOutcomeCommandHandler_Handle_LateCancelKeepsShipment(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.LabelReady)
	attempt := fixturePayment(t, aggregate.ID())

	cmd, err := commands.NewApplyPaymentOutcomeCommand(aggregate.ID(), payment.Cancelled, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockPaymentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("PaymentRepository").Return(paymentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	paymentRepo.On("GetLatestByShipment", mock.Anything, aggregate.ID()).Return(attempt, nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPaymentOutcomeCommandHandler(factory, nil, nil, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, shipment.LabelReady, aggregate.Status(),
		"no Cancelled edge from LabelReady, the shipment keeps its status")
	require.Equal(t, payment.Cancelled, attempt.Status())
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewApplyPaymentOutcomeCommand_RejectsNonTerminalOutcome(t *testing.T) {
	_, err := commands.NewApplyPaymentOutcomeCommand(kernel.NewUUID(), payment.Pending, "")
	require.ErrorIs(t, err, commands.ErrOutcomeIsNotTerminal)
}
