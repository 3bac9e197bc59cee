package inpost

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// MockStepClient is a mock implementation of the stepClient interface.
type MockStepClient struct {
	mock.Mock
}

func (m *MockStepClient) CreateDraft(ctx context.Context, req draftRequest) (draftResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(draftResponse), args.Error(1)
}

func (m *MockStepClient) GetOffers(ctx context.Context, carrierShipmentID string) ([]offerResponse, error) {
	args := m.Called(ctx, carrierShipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]offerResponse), args.Error(1)
}

func (m *MockStepClient) SelectOffer(ctx context.Context, carrierShipmentID, offerID string) (draftResponse, error) {
	args := m.Called(ctx, carrierShipmentID, offerID)
	return args.Get(0).(draftResponse), args.Error(1)
}

func (m *MockStepClient) GetLabel(ctx context.Context, carrierShipmentID string, format label.Format) ([]byte, error) {
	args := m.Called(ctx, carrierShipmentID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStepClient) Track(ctx context.Context, trackingNumber string) (trackingResponse, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Get(0).(trackingResponse), args.Error(1)
}

func (m *MockStepClient) CreateManifest(ctx context.Context, carrierShipmentIDs []string) (manifestResponse, error) {
	args := m.Called(ctx, carrierShipmentIDs)
	return args.Get(0).(manifestResponse), args.Error(1)
}

func gatewayTestShipment(t *testing.T, serviceCode string, withDimensions bool) *shipment.Shipment {
	t.Helper()

	sender, err := shipment.NewAddress("Anna Nowak", "+48500100200", "anna@example.com",
		"Dluga", "12", "", "Krakow", "30-001", "PL")
	require.NoError(t, err)
	receiver, err := shipment.NewAddress("Jan Kowalski", "+48600200300", "",
		"Prosta", "8", "14", "Warszawa", "00-001", "PL")
	require.NoError(t, err)

	var length, width, height *float64
	if withDimensions {
		l, w, h := 30.0, 20.0, 10.0
		length, width, height = &l, &w, &h
	}
	parcel, err := shipment.NewParcel(length, width, height, 1.5)
	require.NoError(t, err)

	aggregate, err := shipment.NewShipment(kernel.NewUUID(), serviceCode,
		sender, receiver, parcel, "ORDER-1001", "KRA012", nil)
	require.NoError(t, err)
	return aggregate
}

func TestGatewayCreateShipment(t *testing.T) {
	ctx := context.Background()

	t.Run("selects the offer matching the mapped service", func(t *testing.T) {
		client := new(MockStepClient)
		gateway := NewGateway(client)
		aggregate := gatewayTestShipment(t, "INPOST_LOCKER_STANDARD", false)

		client.On("CreateDraft", ctx, mock.MatchedBy(func(req draftRequest) bool {
			return req.Service == "inpost_locker_standard"
		})).Return(draftResponse{ID: "shipx-1", TrackingNumber: "PL001"}, nil).Once()
		client.On("GetOffers", ctx, "shipx-1").Return([]offerResponse{
			{ID: "offer-a", Service: "inpost_courier_standard", Price: pricePayload{Amount: 25.00}},
			{ID: "offer-b", Service: "inpost_locker_standard", Price: pricePayload{Amount: 12.99}},
		}, nil).Once()
		client.On("SelectOffer", ctx, "shipx-1", "offer-b").
			Return(draftResponse{ID: "shipx-1", TrackingNumber: "PL001", Status: "confirmed"}, nil).Once()

		result, err := gateway.CreateShipment(ctx, aggregate)

		require.NoError(t, err)
		assert.Equal(t, "shipx-1", result.CarrierShipmentID)
		assert.Equal(t, "PL001", result.TrackingNumber)
		require.NotNil(t, result.PricePLN)
		assert.InDelta(t, 12.99, *result.PricePLN, 0.001)
		client.AssertExpectations(t)
	})

	t.Run("falls back to the first offer when none matches", func(t *testing.T) {
		client := new(MockStepClient)
		gateway := NewGateway(client)
		aggregate := gatewayTestShipment(t, "INPOST_LOCKER_STANDARD", false)

		client.On("CreateDraft", ctx, mock.Anything).
			Return(draftResponse{ID: "shipx-2", TrackingNumber: "PL002"}, nil).Once()
		client.On("GetOffers", ctx, "shipx-2").Return([]offerResponse{
			{ID: "offer-x", Service: "inpost_locker_express", Price: pricePayload{Amount: 19.50}},
		}, nil).Once()
		client.On("SelectOffer", ctx, "shipx-2", "offer-x").
			Return(draftResponse{ID: "shipx-2", TrackingNumber: "PL002"}, nil).Once()

		result, err := gateway.CreateShipment(ctx, aggregate)

		require.NoError(t, err)
		require.NotNil(t, result.PricePLN)
		assert.InDelta(t, 19.50, *result.PricePLN, 0.001)
		client.AssertExpectations(t)
	})

	t.Run("unmapped service code fails before any carrier call", func(t *testing.T) {
		client := new(MockStepClient)
		gateway := NewGateway(client)
		aggregate := gatewayTestShipment(t, "DHL_COURIER", false)

		_, err := gateway.CreateShipment(ctx, aggregate)

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrUnsupportedService)
		client.AssertNotCalled(t, "CreateDraft", mock.Anything, mock.Anything)
	})

	t.Run("failed offers step surfaces error without selecting", func(t *testing.T) {
		client := new(MockStepClient)
		gateway := NewGateway(client)
		aggregate := gatewayTestShipment(t, "INPOST_LOCKER_STANDARD", false)

		client.On("CreateDraft", ctx, mock.Anything).
			Return(draftResponse{ID: "shipx-3"}, nil).Once()
		client.On("GetOffers", ctx, "shipx-3").
			Return(nil, ports.NewCarrierAPIError(carrierName, "get offers", 502, false, nil)).Once()

		_, err := gateway.CreateShipment(ctx, aggregate)

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrCarrierAPI)
		client.AssertNotCalled(t, "SelectOffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty offer list is a carrier api failure", func(t *testing.T) {
		client := new(MockStepClient)
		gateway := NewGateway(client)
		aggregate := gatewayTestShipment(t, "INPOST_LOCKER_STANDARD", false)

		client.On("CreateDraft", ctx, mock.Anything).
			Return(draftResponse{ID: "shipx-4"}, nil).Once()
		client.On("GetOffers", ctx, "shipx-4").Return([]offerResponse{}, nil).Once()

		_, err := gateway.CreateShipment(ctx, aggregate)

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrCarrierAPI)
		client.AssertNotCalled(t, "SelectOffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("substitutes minimum locker dimensions when parcel has none", func(t *testing.T) {
		client := new(MockStepClient)
		gateway := NewGateway(client)
		aggregate := gatewayTestShipment(t, "INPOST_LOCKER_STANDARD", false)

		client.On("CreateDraft", ctx, mock.MatchedBy(func(req draftRequest) bool {
			dims := req.Parcels[0].Dimensions
			return dims.Length == minLengthMm && dims.Width == minWidthMm &&
				dims.Height == minHeightMm && dims.Unit == "mm"
		})).Return(draftResponse{ID: "shipx-5"}, nil).Once()
		client.On("GetOffers", ctx, "shipx-5").Return([]offerResponse{
			{ID: "offer-1", Service: "inpost_locker_standard", Price: pricePayload{Amount: 12.99}},
		}, nil).Once()
		client.On("SelectOffer", ctx, "shipx-5", "offer-1").
			Return(draftResponse{ID: "shipx-5"}, nil).Once()

		_, err := gateway.CreateShipment(ctx, aggregate)

		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("converts measured dimensions from cm to mm", func(t *testing.T) {
		client := new(MockStepClient)
		gateway := NewGateway(client)
		aggregate := gatewayTestShipment(t, "INPOST_LOCKER_STANDARD", true)

		client.On("CreateDraft", ctx, mock.MatchedBy(func(req draftRequest) bool {
			dims := req.Parcels[0].Dimensions
			return dims.Length == 300 && dims.Width == 200 && dims.Height == 100
		})).Return(draftResponse{ID: "shipx-6"}, nil).Once()
		client.On("GetOffers", ctx, "shipx-6").Return([]offerResponse{
			{ID: "offer-1", Service: "inpost_locker_standard", Price: pricePayload{Amount: 12.99}},
		}, nil).Once()
		client.On("SelectOffer", ctx, "shipx-6", "offer-1").
			Return(draftResponse{ID: "shipx-6"}, nil).Once()

		_, err := gateway.CreateShipment(ctx, aggregate)

		require.NoError(t, err)
		client.AssertExpectations(t)
	})
}

func TestGatewayTrack(t *testing.T) {
	ctx := context.Background()
	client := new(MockStepClient)
	gateway := NewGateway(client)

	now := time.Now().UTC().Truncate(time.Second)
	client.On("Track", ctx, "PL001").Return(trackingResponse{
		TrackingNumber: "PL001",
		Events: []trackingPayload{
			{Status: "confirmed", Description: "Shipment confirmed", OccurredAt: now.Add(-3 * time.Hour)},
			{Status: "dispatched_by_sender", Location: "KRA012", OccurredAt: now.Add(-2 * time.Hour)},
			{Status: "delivered", Location: "WAW042", OccurredAt: now},
		},
	}, nil).Once()

	records, err := gateway.Track(ctx, "PL001")

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, shipment.Unknown, records[0].LifecycleStatus)
	assert.Equal(t, shipment.Shipped, records[1].LifecycleStatus)
	assert.Equal(t, shipment.Delivered, records[2].LifecycleStatus)
	assert.Equal(t, "confirmed", records[0].Status)
	assert.Equal(t, now, records[2].OccurredAt)
	client.AssertExpectations(t)
}

func TestGatewayGetLabel(t *testing.T) {
	ctx := context.Background()
	client := new(MockStepClient)
	gateway := NewGateway(client)

	client.On("GetLabel", ctx, "shipx-1", label.FormatZPL).
		Return([]byte("^XA^XZ"), nil).Once()

	doc, err := gateway.GetLabel(ctx, "shipx-1", label.FormatZPL)

	require.NoError(t, err)
	assert.Equal(t, []byte("^XA^XZ"), doc.Content)
	assert.Equal(t, label.FormatZPL, doc.Format)
	client.AssertExpectations(t)
}

func TestGatewayManifest(t *testing.T) {
	ctx := context.Background()
	client := new(MockStepClient)
	gateway := NewGateway(client)

	client.On("CreateManifest", ctx, []string{"shipx-1", "shipx-2"}).
		Return(manifestResponse{ID: "manifest-9"}, nil).Once()

	result, err := gateway.Manifest(ctx, []string{"shipx-1", "shipx-2"})

	require.NoError(t, err)
	assert.Equal(t, "manifest-9", result.CarrierManifestID)
	client.AssertExpectations(t)
}
