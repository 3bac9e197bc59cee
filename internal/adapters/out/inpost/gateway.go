package inpost

import (
	"context"
	"errors"

	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
)

// Minimum locker packaging in millimeters, substituted when a shipment
// carries no measured dimensions. Locker services price by template size.
const (
	minHeightMm = 80
	minWidthMm  = 380
	minLengthMm = 640
)

// stepClient is the per-step contract the gateway drives. Each creation step
// can fail independently, so tests stub failures at any point of the flow.
type stepClient interface {
	CreateDraft(ctx context.Context, req draftRequest) (draftResponse, error)
	GetOffers(ctx context.Context, carrierShipmentID string) ([]offerResponse, error)
	SelectOffer(ctx context.Context, carrierShipmentID, offerID string) (draftResponse, error)
	GetLabel(ctx context.Context, carrierShipmentID string, format label.Format) ([]byte, error)
	Track(ctx context.Context, trackingNumber string) (trackingResponse, error)
	CreateManifest(ctx context.Context, carrierShipmentIDs []string) (manifestResponse, error)
}

// Gateway implements ports.CarrierGateway for InPost. Shipment creation is a
// three-step carrier transaction: draft, offers, select. Identifiers are only
// reported after the full flow succeeds; a failure at any step leaves at most
// a dangling carrier draft, which the carrier expires on its own.
type Gateway struct {
	client stepClient
}

// NewGateway creates an InPost gateway over a ShipX client.
func NewGateway(client stepClient) *Gateway {
	return &Gateway{client: client}
}

// serviceCodes maps internal service codes to ShipX service identifiers.
func serviceCodes() map[string]string {
	return map[string]string{
		"INPOST_LOCKER_STANDARD":  "inpost_locker_standard",
		"INPOST_LOCKER_ECONOMY":   "inpost_locker_economy",
		"INPOST_COURIER_STANDARD": "inpost_courier_standard",
	}
}

// CreateShipment runs the draft/offers/select flow and returns the carrier
// identifiers. The matching offer for the mapped service is selected when
// present, otherwise the first offer; InPost returns offers for the requested
// service first, so the fallback only triggers on vocabulary drift.
func (g *Gateway) CreateShipment(ctx context.Context, aggregate *shipment.Shipment) (ports.CreateShipmentResult, error) {
	service, ok := serviceCodes()[aggregate.ServiceCode()]
	if !ok {
		return ports.CreateShipmentResult{}, ports.NewUnsupportedServiceError(carrierName, aggregate.ServiceCode())
	}

	draft, err := g.client.CreateDraft(ctx, buildDraftRequest(aggregate, service))
	if err != nil {
		return ports.CreateShipmentResult{}, err
	}

	offers, err := g.client.GetOffers(ctx, draft.ID)
	if err != nil {
		return ports.CreateShipmentResult{}, err
	}
	if len(offers) == 0 {
		return ports.CreateShipmentResult{}, ports.NewCarrierAPIError(carrierName, "get offers", 0, false,
			errors.New("no offers returned for draft"))
	}

	chosen := pickOffer(offers, service)
	selected, err := g.client.SelectOffer(ctx, draft.ID, chosen.ID)
	if err != nil {
		return ports.CreateShipmentResult{}, err
	}

	trackingNumber := selected.TrackingNumber
	if trackingNumber == "" {
		trackingNumber = draft.TrackingNumber
	}

	price := chosen.Price.Amount
	return ports.CreateShipmentResult{
		CarrierShipmentID: draft.ID,
		TrackingNumber:    trackingNumber,
		PricePLN:          &price,
	}, nil
}

// GetLabel fetches the label document for a carrier shipment.
func (g *Gateway) GetLabel(ctx context.Context, carrierShipmentID string, format label.Format) (ports.LabelDocument, error) {
	content, err := g.client.GetLabel(ctx, carrierShipmentID, format)
	if err != nil {
		return ports.LabelDocument{}, err
	}
	return ports.LabelDocument{Content: content, Format: format}, nil
}

// Track fetches and translates the tracking history for a tracking number.
func (g *Gateway) Track(ctx context.Context, trackingNumber string) ([]ports.TrackingRecord, error) {
	resp, err := g.client.Track(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	records := make([]ports.TrackingRecord, 0, len(resp.Events))
	for _, event := range resp.Events {
		records = append(records, ports.TrackingRecord{
			Status:          event.Status,
			Description:     event.Description,
			Location:        event.Location,
			OccurredAt:      event.OccurredAt,
			LifecycleStatus: lifecycleStatus(event.Status),
		})
	}
	return records, nil
}

// Manifest requests a handover manifest for a batch of carrier shipments.
func (g *Gateway) Manifest(ctx context.Context, carrierShipmentIDs []string) (ports.ManifestResult, error) {
	resp, err := g.client.CreateManifest(ctx, carrierShipmentIDs)
	if err != nil {
		return ports.ManifestResult{}, err
	}
	return ports.ManifestResult{CarrierManifestID: resp.ID}, nil
}

func buildDraftRequest(aggregate *shipment.Shipment, service string) draftRequest {
	req := draftRequest{
		Sender:    partyFromDomain(aggregate.Sender()),
		Receiver:  partyFromDomain(aggregate.Receiver()),
		Parcels:   []parcelPayload{parcelFromDomain(aggregate.Parcel())},
		Service:   service,
		Reference: aggregate.Reference(),
	}
	if aggregate.PickupPointID() != "" {
		req.CustomAttributes = map[string]any{"target_point": aggregate.PickupPointID()}
	}
	return req
}

func partyFromDomain(addr shipment.Address) partyPayload {
	street := addr.Street()
	if addr.ApartmentNumber() != "" {
		street += "/" + addr.ApartmentNumber()
	}

	return partyPayload{
		Name:  addr.Name(),
		Phone: addr.Phone(),
		Email: addr.Email(),
		Address: addressPayload{
			Street:         street,
			BuildingNumber: addr.BuildingNumber(),
			City:           addr.City(),
			PostCode:       addr.PostalCode(),
			CountryCode:    addr.CountryCode(),
		},
	}
}

func parcelFromDomain(parcel shipment.Parcel) parcelPayload {
	dims := dimensionsPayload{
		Length: minLengthMm,
		Width:  minWidthMm,
		Height: minHeightMm,
		Unit:   "mm",
	}
	if parcel.HasDimensions() {
		dims.Length = *parcel.LengthCm() * 10
		dims.Width = *parcel.WidthCm() * 10
		dims.Height = *parcel.HeightCm() * 10
	}

	return parcelPayload{
		Dimensions: dims,
		Weight:     weightPayload{Amount: parcel.WeightKg(), Unit: "kg"},
	}
}

func pickOffer(offers []offerResponse, service string) offerResponse {
	for _, offer := range offers {
		if offer.Service == service {
			return offer
		}
	}
	return offers[0]
}

// lifecycleStatus maps ShipX tracking vocabulary onto the shipment lifecycle.
// Statuses with no lifecycle meaning map to Unknown and only enrich history.
func lifecycleStatus(carrierStatus string) shipment.Status {
	switch carrierStatus {
	case "dispatched_by_sender", "collected_from_sender", "taken_by_courier", "adopted_at_source_branch":
		return shipment.Shipped
	case "delivered":
		return shipment.Delivered
	case "returned_to_sender":
		return shipment.Returned
	default:
		return shipment.Unknown
	}
}
