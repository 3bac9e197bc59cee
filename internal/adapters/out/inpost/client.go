// Package inpost implements the carrier gateway for the InPost ShipX API.
// The Client owns HTTP transport concerns (auth, timeout, error
// classification); the Gateway owns the creation orchestration and the
// mapping between ShipX vocabulary and the shipment lifecycle.
package inpost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/ports"
	"skybroker/internal/pkg/errs"
)

// carrierName identifies this integration in error reports.
const carrierName = "INPOST"

// ClientConfig carries the connection settings for the ShipX API.
type ClientConfig struct {
	BaseURL        string
	Token          string
	OrganizationID string
	Timeout        time.Duration
}

// Validate checks that the required connection settings are present.
func (c ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return errs.NewConfigurationError("inpost base url")
	}
	if c.Token == "" {
		return errs.NewConfigurationError("inpost token")
	}
	if c.Timeout <= 0 {
		return errs.NewConfigurationError("inpost timeout")
	}
	return nil
}

// Client is a thin HTTP client for the ShipX endpoints the gateway needs.
// Calls are bounded by the configured timeout and are never retried here;
// retry policy belongs to the callers.
type Client struct {
	baseURL        string
	token          string
	organizationID string
	httpClient     *http.Client
}

// NewClient creates a ShipX API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		token:          cfg.Token,
		organizationID: cfg.OrganizationID,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type draftRequest struct {
	Sender           partyPayload    `json:"sender"`
	Receiver         partyPayload    `json:"receiver"`
	Parcels          []parcelPayload `json:"parcels"`
	Service          string          `json:"service"`
	Reference        string          `json:"reference,omitempty"`
	CustomAttributes map[string]any  `json:"custom_attributes,omitempty"`
}

type partyPayload struct {
	Name    string         `json:"name"`
	Phone   string         `json:"phone"`
	Email   string         `json:"email,omitempty"`
	Address addressPayload `json:"address"`
}

type addressPayload struct {
	Street         string `json:"street"`
	BuildingNumber string `json:"building_number,omitempty"`
	City           string `json:"city"`
	PostCode       string `json:"post_code"`
	CountryCode    string `json:"country_code"`
}

type parcelPayload struct {
	Dimensions dimensionsPayload `json:"dimensions"`
	Weight     weightPayload     `json:"weight"`
}

type dimensionsPayload struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

type weightPayload struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type draftResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

type offerResponse struct {
	ID      string       `json:"id"`
	Service string       `json:"service"`
	Price   pricePayload `json:"price"`
}

type pricePayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type selectOfferRequest struct {
	OfferID string `json:"offer_id"`
}

type trackingResponse struct {
	TrackingNumber string            `json:"tracking_number"`
	Events         []trackingPayload `json:"tracking_details"`
}

type trackingPayload struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	OccurredAt  time.Time `json:"datetime"`
}

type manifestRequest struct {
	ShipmentIDs []string `json:"shipment_ids"`
}

type manifestResponse struct {
	ID string `json:"id"`
}

// CreateDraft creates a carrier-side shipment draft.
func (c *Client) CreateDraft(ctx context.Context, req draftRequest) (draftResponse, error) {
	var resp draftResponse
	err := c.doJSON(ctx, "create draft", http.MethodPost, "/v1/shipments", req, &resp)
	return resp, err
}

// GetOffers fetches the price offers for a carrier draft.
func (c *Client) GetOffers(ctx context.Context, carrierShipmentID string) ([]offerResponse, error) {
	var resp []offerResponse
	path := fmt.Sprintf("/v1/shipments/%s/offers", url.PathEscape(carrierShipmentID))
	err := c.doJSON(ctx, "get offers", http.MethodGet, path, nil, &resp)
	return resp, err
}

// SelectOffer finalizes a carrier draft by accepting one of its offers.
func (c *Client) SelectOffer(ctx context.Context, carrierShipmentID, offerID string) (draftResponse, error) {
	var resp draftResponse
	path := fmt.Sprintf("/v1/shipments/%s/select_offer", url.PathEscape(carrierShipmentID))
	err := c.doJSON(ctx, "select offer", http.MethodPost, path, selectOfferRequest{OfferID: offerID}, &resp)
	return resp, err
}

// GetLabel downloads a label document. ZPL comes back as plain text,
// the other formats as PDF.
func (c *Client) GetLabel(ctx context.Context, carrierShipmentID string, format label.Format) ([]byte, error) {
	const op = "get label"

	path := fmt.Sprintf("/v1/shipments/%s/label?format=%s",
		url.PathEscape(carrierShipmentID), url.QueryEscape(format.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, ports.NewCarrierAPIError(carrierName, op, 0, false, err)
	}
	c.authorize(req)
	req.Header.Set("Accept", format.MimeType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ports.NewCarrierAPIError(carrierName, op, 0, isTimeout(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ports.NewCarrierAPIError(carrierName, op, resp.StatusCode, false, nil)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ports.NewCarrierAPIError(carrierName, op, 0, isTimeout(err), err)
	}
	return content, nil
}

// Track fetches the tracking history for a tracking number.
func (c *Client) Track(ctx context.Context, trackingNumber string) (trackingResponse, error) {
	var resp trackingResponse
	path := fmt.Sprintf("/v1/tracking/%s", url.PathEscape(trackingNumber))
	err := c.doJSON(ctx, "track", http.MethodGet, path, nil, &resp)
	return resp, err
}

// CreateManifest requests a handover manifest for a batch of carrier shipments.
func (c *Client) CreateManifest(ctx context.Context, carrierShipmentIDs []string) (manifestResponse, error) {
	var resp manifestResponse
	err := c.doJSON(ctx, "create manifest", http.MethodPost, "/v1/manifests",
		manifestRequest{ShipmentIDs: carrierShipmentIDs}, &resp)
	return resp, err
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return ports.NewCarrierAPIError(carrierName, op, 0, false, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return ports.NewCarrierAPIError(carrierName, op, 0, false, err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.NewCarrierAPIError(carrierName, op, 0, isTimeout(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.NewCarrierAPIError(carrierName, op, resp.StatusCode, false, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ports.NewCarrierAPIError(carrierName, op, 0, false,
			fmt.Errorf("malformed response body: %w", err))
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.organizationID != "" {
		req.Header.Set("Organization-Id", c.organizationID)
	}
}

// isTimeout reports whether a transport error is a deadline or timeout.
// A timed-out call has an unknown outcome on the carrier side.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
