// Package http exposes the broker's REST API. Handlers are thin: they bind
// requests, build commands and queries, and translate typed errors into HTTP
// outcomes. All business decisions live in the use case layer.
package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skybroker/internal/core/application/usecases/commands"
	"skybroker/internal/core/application/usecases/queries"
	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/domain/model/payment"
	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
	"skybroker/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createShipmentHandler commands.CreateShipmentCommandHandler
	startPaymentHandler   commands.StartPaymentCommandHandler
	applyOutcomeHandler   commands.ApplyPaymentOutcomeCommandHandler
	manifestHandler       commands.ManifestShipmentsCommandHandler

	getShipmentHandler queries.GetShipmentQueryHandler
	getLabelHandler    queries.GetLabelQueryHandler
	getTrackingHandler queries.GetTrackingQueryHandler

	webhookAPIKey string
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	startPaymentHandler commands.StartPaymentCommandHandler,
	applyOutcomeHandler commands.ApplyPaymentOutcomeCommandHandler,
	manifestHandler commands.ManifestShipmentsCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getLabelHandler queries.GetLabelQueryHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	webhookAPIKey string,
) *Server {
	return &Server{
		createShipmentHandler: createShipmentHandler,
		startPaymentHandler:   startPaymentHandler,
		applyOutcomeHandler:   applyOutcomeHandler,
		manifestHandler:       manifestHandler,
		getShipmentHandler:    getShipmentHandler,
		getLabelHandler:       getLabelHandler,
		getTrackingHandler:    getTrackingHandler,
		webhookAPIKey:         webhookAPIKey,
	}
}

// RegisterRoutes wires the API onto an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/shipments", s.CreateShipment)
	v1.GET("/shipments/:id", s.GetShipment)
	v1.GET("/shipments/:id/label", s.GetLabel)
	v1.GET("/shipments/:id/tracking", s.GetTracking)
	v1.POST("/payments/:shipmentId/start", s.StartPayment)
	v1.POST("/payments/simulate", s.SimulatePayment)
	v1.POST("/webhooks/payments", s.PaymentWebhook)
	v1.POST("/manifests", s.CreateManifest)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// AddressRequest is the address block of a shipment creation request.
type AddressRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Street          string `json:"street"`
	BuildingNumber  string `json:"building_number,omitempty"`
	ApartmentNumber string `json:"apartment_number,omitempty"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
	CountryCode     string `json:"country_code"`
}

// ParcelRequest is the parcel block of a shipment creation request.
type ParcelRequest struct {
	LengthCm *float64 `json:"length_cm,omitempty"`
	WidthCm  *float64 `json:"width_cm,omitempty"`
	HeightCm *float64 `json:"height_cm,omitempty"`
	WeightKg float64  `json:"weight_kg"`
}

// CreateShipmentRequest is the payload of POST /api/v1/shipments.
type CreateShipmentRequest struct {
	ServiceCode   string         `json:"service_code"`
	CarrierCode   string         `json:"carrier_code"`
	Reference     string         `json:"reference,omitempty"`
	PickupPointID string         `json:"pickup_point_id,omitempty"`
	Sender        AddressRequest `json:"sender"`
	Receiver      AddressRequest `json:"receiver"`
	Parcel        ParcelRequest  `json:"parcel"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ShipmentResponse is the shipment snapshot returned by the API.
type ShipmentResponse struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	ServiceCode       string    `json:"service_code"`
	Reference         string    `json:"reference,omitempty"`
	PickupPointID     string    `json:"pickup_point_id,omitempty"`
	CarrierCode       *string   `json:"carrier_code,omitempty"`
	CarrierShipmentID *string   `json:"carrier_shipment_id,omitempty"`
	TrackingNumber    *string   `json:"tracking_number,omitempty"`
	PricePLN          *float64  `json:"price_pln,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ErrorResponse is the error body returned on failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateShipment handles POST /api/v1/shipments. Carrier linking is best
// effort: the response is 201 with a DRAFT snapshot when linking degraded.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req CreateShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	carrierCode, err := shipment.ParseCarrierCode(req.CarrierCode)
	if err != nil {
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	}

	sender, err := addressFromRequest(req.Sender)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid sender: "+err.Error())
	}
	receiver, err := addressFromRequest(req.Receiver)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid receiver: "+err.Error())
	}
	parcel, err := shipment.NewParcel(req.Parcel.LengthCm, req.Parcel.WidthCm,
		req.Parcel.HeightCm, req.Parcel.WeightKg)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid parcel: "+err.Error())
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, req.ServiceCode, carrierCode,
		sender, receiver, parcel, req.Reference, req.PickupPointID, req.Metadata)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment data: "+err.Error())
	}

	if err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorFromTyped(ctx, err)
	}

	return s.respondShipment(ctx, http.StatusCreated, shipmentID)
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	return s.respondShipment(ctx, http.StatusOK, shipmentID)
}

// GetLabel handles GET /api/v1/shipments/:id/label.
func (s *Server) GetLabel(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	var format *label.Format
	if raw := ctx.QueryParam("format"); raw != "" {
		parsed, parseErr := label.ParseFormat(raw)
		if parseErr != nil {
			return errorJSON(ctx, http.StatusUnprocessableEntity, "Invalid label format")
		}
		format = &parsed
	}

	query, err := queries.NewGetLabelQuery(shipmentID, format)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getLabelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorJSON(ctx, http.StatusNotFound, "Label is not ready")
		}
		return s.errorFromTyped(ctx, err)
	}

	return ctx.Blob(http.StatusOK, resp.MimeType, resp.Content)
}

// TrackingEventResponse is one tracking history entry in API responses.
type TrackingEventResponse struct {
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// GetTracking handles GET /api/v1/shipments/:id/tracking.
func (s *Server) GetTracking(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	query, err := queries.NewGetTrackingQuery(shipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	history, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorFromTyped(ctx, err)
	}

	response := make([]TrackingEventResponse, len(history))
	for i, event := range history {
		response[i] = TrackingEventResponse{
			Status:      event.Status,
			Description: event.Description,
			Location:    event.Location,
			OccurredAt:  event.OccurredAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// StartPaymentRequest is the payload of POST /api/v1/payments/:shipmentId/start.
type StartPaymentRequest struct {
	Provider  string   `json:"provider"`
	AmountPLN *float64 `json:"amount_pln,omitempty"`
}

// StartPaymentResponse returns the id of the pending payment attempt.
type StartPaymentResponse struct {
	PaymentID string `json:"payment_id"`
}

// StartPayment handles POST /api/v1/payments/:shipmentId/start.
func (s *Server) StartPayment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	var req StartPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewStartPaymentCommand(kernel.NewUUID(), shipmentID, req.Provider, req.AmountPLN)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid payment data: "+err.Error())
	}

	paymentID, err := s.startPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorFromTyped(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, StartPaymentResponse{PaymentID: paymentID.String()})
}

// SimulatePaymentRequest is the payload of POST /api/v1/payments/simulate.
// Outcome defaults to PAID.
type SimulatePaymentRequest struct {
	ShipmentID  string `json:"shipment_id"`
	Outcome     string `json:"outcome,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
}

// SimulatePayment handles POST /api/v1/payments/simulate. It drives the same
// reconciliation flow as the webhook, for local and test environments.
func (s *Server) SimulatePayment(ctx echo.Context) error {
	var req SimulatePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.ShipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	outcome := payment.Paid
	if req.Outcome != "" {
		outcome, err = payment.ParseStatus(req.Outcome)
		if err != nil {
			return errorJSON(ctx, http.StatusUnprocessableEntity, "Invalid payment outcome")
		}
	}

	cmd, err := commands.NewApplyPaymentOutcomeCommand(shipmentID, outcome, req.ExternalRef)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid payment data: "+err.Error())
	}

	if err := s.applyOutcomeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorFromTyped(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PaymentWebhookRequest is the payload of POST /api/v1/webhooks/payments.
type PaymentWebhookRequest struct {
	Event string             `json:"event"`
	Data  PaymentWebhookData `json:"data"`
}

// PaymentWebhookData carries the payment outcome reported by the provider.
type PaymentWebhookData struct {
	ShipmentID  string `json:"shipment_id"`
	PaymentID   string `json:"payment_id,omitempty"`
	Status      string `json:"status"`
	ExternalRef string `json:"external_ref,omitempty"`
}

// PaymentWebhook handles POST /api/v1/webhooks/payments. Delivery is
// at-least-once on the provider side; replays are harmless by design.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	if s.webhookAPIKey == "" ||
		subtle.ConstantTimeCompare([]byte(ctx.Request().Header.Get("X-Api-Key")), []byte(s.webhookAPIKey)) != 1 {
		return errorJSON(ctx, http.StatusUnauthorized, "Invalid api key")
	}

	var req PaymentWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(req.Data.ShipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	outcome, err := payment.ParseStatus(req.Data.Status)
	if err != nil {
		return errorJSON(ctx, http.StatusUnprocessableEntity, "Invalid payment status")
	}

	cmd, err := commands.NewApplyPaymentOutcomeCommand(shipmentID, outcome, req.Data.ExternalRef)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid payment data: "+err.Error())
	}

	if err := s.applyOutcomeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorFromTyped(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateManifestRequest is the payload of POST /api/v1/manifests.
type CreateManifestRequest struct {
	CarrierCode string   `json:"carrier_code"`
	ShipmentIDs []string `json:"shipment_ids"`
}

// CreateManifestResponse returns the new manifest id.
type CreateManifestResponse struct {
	ManifestID string `json:"manifest_id"`
}

// CreateManifest handles POST /api/v1/manifests. The batch is all or
// nothing: one ineligible shipment rejects the whole request.
func (s *Server) CreateManifest(ctx echo.Context) error {
	var req CreateManifestRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	carrierCode, err := shipment.ParseCarrierCode(req.CarrierCode)
	if err != nil {
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	}

	shipmentIDs := make([]kernel.UUID, 0, len(req.ShipmentIDs))
	for _, raw := range req.ShipmentIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id: "+raw)
		}
		shipmentIDs = append(shipmentIDs, id)
	}

	manifestID := kernel.NewUUID()
	cmd, err := commands.NewManifestShipmentsCommand(manifestID, carrierCode, shipmentIDs)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid manifest data: "+err.Error())
	}

	if err := s.manifestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorFromTyped(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateManifestResponse{ManifestID: manifestID.String()})
}

func (s *Server) respondShipment(ctx echo.Context, status int, shipmentID kernel.UUID) error {
	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	snapshot, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorFromTyped(ctx, err)
	}

	return ctx.JSON(status, ShipmentResponse{
		ID:                snapshot.ID.String(),
		Status:            snapshot.Status,
		ServiceCode:       snapshot.ServiceCode,
		Reference:         snapshot.Reference,
		PickupPointID:     snapshot.PickupPointID,
		CarrierCode:       snapshot.CarrierCode,
		CarrierShipmentID: snapshot.CarrierShipmentID,
		TrackingNumber:    snapshot.TrackingNumber,
		PricePLN:          snapshot.PricePLN,
		CreatedAt:         snapshot.CreatedAt,
	})
}

// errorFromTyped translates use case errors into HTTP outcomes.
func (s *Server) errorFromTyped(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, ports.ErrUnknownCarrier), errors.Is(err, ports.ErrUnsupportedService):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, shipment.ErrInvalidStatusTransition),
		errors.Is(err, payment.ErrInvalidStatusTransition),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, ports.ErrCarrierNotLinked):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrCarrierAPI):
		return errorJSON(ctx, http.StatusBadGateway, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func addressFromRequest(req AddressRequest) (shipment.Address, error) {
	return shipment.NewAddress(req.Name, req.Phone, req.Email, req.Street,
		req.BuildingNumber, req.ApartmentNumber, req.City, req.PostalCode, req.CountryCode)
}
