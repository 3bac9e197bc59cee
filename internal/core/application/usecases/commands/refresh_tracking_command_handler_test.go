package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/domain/model/tracking"
	"skybroker/internal/core/ports"
)

func TestRefreshTrackingCommandHandler_Handle_AdvancesLifecycle(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.Manifested)
	cmd, err := commands.NewRefreshTrackingCommand(aggregate.ID())
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	records := []ports.TrackingRecord{
		{Status: "collected_from_sender", OccurredAt: now.Add(-2 * time.Hour),
			LifecycleStatus: shipment.Shipped},
		{Status: "delivered", OccurredAt: now.Add(-time.Hour),
			LifecycleStatus: shipment.Delivered},
	}

	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	registry.On("Resolve", shipment.CarrierInPost).Return(gateway, nil).Once()
	gateway.On("Track", mock.Anything, *aggregate.TrackingNumber()).Return(records, nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("TrackingRepository").Return(trackingRepo).Once()
	shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	trackingRepo.On("GetByShipment", mock.Anything, aggregate.ID()).Return([]*tracking.Event{}, nil).Once()
	trackingRepo.On("Add", mock.Anything, mock.AnythingOfType("*tracking.Event")).Return(nil).Twice()
	shipmentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockTrackingCache)
	cache.On("Invalidate", mock.Anything, aggregate.ID()).Return(nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, aggregate.ID().String(),
		shipment.Manifested, shipment.Delivered).Return(nil).Once()

	h := commands.NewRefreshTrackingCommandHandler(factory, registry, cache, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, shipment.Delivered, aggregate.Status(),
		"a batch with pickup and delivery walks through both statuses")
	cache.AssertExpectations(t)
}

func TestRefreshTrackingCommandHandler_Handle_DeduplicatesKnownEvents(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.Shipped)
	cmd, err := commands.NewRefreshTrackingCommand(aggregate.ID())
	require.NoError(t, err)

	occurredAt := time.Now().UTC().Truncate(time.Second)
	known, err := tracking.NewEvent(kernel.NewUUID(), aggregate.ID(), "INPOST",
		"collected_from_sender", "", "", occurredAt)
	require.NoError(t, err)

	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	registry.On("Resolve", shipment.CarrierInPost).Return(gateway, nil).Once()
	gateway.On("Track", mock.Anything, *aggregate.TrackingNumber()).
		Return([]ports.TrackingRecord{
			{Status: "collected_from_sender", OccurredAt: occurredAt, LifecycleStatus: shipment.Shipped},
		}, nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("TrackingRepository").Return(trackingRepo).Once()
	shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	trackingRepo.On("GetByShipment", mock.Anything, aggregate.ID()).
		Return([]*tracking.Event{known}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockTrackingCache)

	h := commands.NewRefreshTrackingCommandHandler(factory, registry, cache, nil, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	trackingRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestRefreshTrackingCommandHandler_Handle_NotLinked(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureShipment(t, shipment.Draft)
	cmd, err := commands.NewRefreshTrackingCommand(aggregate.ID())
	require.NoError(t, err)

	registry := new(MockCarrierRegistry)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockTrackingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRefreshTrackingCommandHandler(factory, registry, nil, nil, discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrCarrierNotLinked)
	registry.AssertNotCalled(t, "Resolve", mock.Anything)
}
