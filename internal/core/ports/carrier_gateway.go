package ports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/domain/model/shipment"
)

var (
	// ErrCarrierAPI is the sentinel wrapped by every CarrierAPIError.
	ErrCarrierAPI = errors.New("carrier api error")

	// ErrCarrierTimeout is additionally wrapped when a carrier call exceeded
	// its deadline. Matches both errors.Is(err, ErrCarrierAPI) and
	// errors.Is(err, ErrCarrierTimeout).
	ErrCarrierTimeout = errors.New("carrier api timeout")

	// ErrUnknownCarrier is the sentinel wrapped by UnknownCarrierError.
	ErrUnknownCarrier = errors.New("unknown carrier")

	// ErrUnsupportedService is the sentinel wrapped by UnsupportedServiceError.
	ErrUnsupportedService = errors.New("unsupported service")

	// ErrCarrierNotLinked is returned when a carrier-side operation is
	// requested for a shipment that has no carrier shipment id yet.
	ErrCarrierNotLinked = errors.New("shipment is not linked to a carrier shipment")
)

// CarrierAPIError reports a failed call to a carrier API: a non-2xx response,
// a transport failure or a deadline. StatusCode is zero when no HTTP response
// was received.
type CarrierAPIError struct {
	Carrier    string
	Op         string
	StatusCode int
	Timeout    bool
	Cause      error
}

func (e *CarrierAPIError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrCarrierAPI, e.Carrier, e.Op)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Timeout {
		msg += ": timeout"
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *CarrierAPIError) Unwrap() []error {
	errs := []error{ErrCarrierAPI}
	if e.Timeout {
		errs = append(errs, ErrCarrierTimeout)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCarrierAPIError creates a CarrierAPIError for a failed carrier call.
func NewCarrierAPIError(carrier, op string, statusCode int, timeout bool, cause error) *CarrierAPIError {
	return &CarrierAPIError{Carrier: carrier, Op: op, StatusCode: statusCode, Timeout: timeout, Cause: cause}
}

// UnknownCarrierError reports a carrier code with no registered gateway.
type UnknownCarrierError struct {
	Carrier string
}

func (e *UnknownCarrierError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownCarrier, e.Carrier)
}

func (e *UnknownCarrierError) Unwrap() error {
	return ErrUnknownCarrier
}

// NewUnknownCarrierError creates an UnknownCarrierError for the given code.
func NewUnknownCarrierError(carrier string) *UnknownCarrierError {
	return &UnknownCarrierError{Carrier: carrier}
}

// UnsupportedServiceError reports a service code the carrier cannot map to
// one of its own services.
type UnsupportedServiceError struct {
	Carrier     string
	ServiceCode string
}

func (e *UnsupportedServiceError) Error() string {
	return fmt.Sprintf("%s: %s does not support %q", ErrUnsupportedService, e.Carrier, e.ServiceCode)
}

func (e *UnsupportedServiceError) Unwrap() error {
	return ErrUnsupportedService
}

// NewUnsupportedServiceError creates an UnsupportedServiceError.
func NewUnsupportedServiceError(carrier, serviceCode string) *UnsupportedServiceError {
	return &UnsupportedServiceError{Carrier: carrier, ServiceCode: serviceCode}
}

// CreateShipmentResult is the outcome of a successful carrier-create flow.
type CreateShipmentResult struct {
	CarrierShipmentID string
	TrackingNumber    string
	PricePLN          *float64
}

// LabelDocument is a label fetched from a carrier: raw bytes plus the
// format actually returned.
type LabelDocument struct {
	Content []byte
	Format  label.Format
}

// TrackingRecord is a single tracking report fetched from a carrier.
// Status carries the carrier's own vocabulary; LifecycleStatus is the
// gateway's mapping into this system's lifecycle, shipment.Unknown when the
// carrier status has no lifecycle meaning.
type TrackingRecord struct {
	Status          string
	Description     string
	Location        string
	OccurredAt      time.Time
	LifecycleStatus shipment.Status
}

// ManifestResult is the outcome of a carrier manifest call.
type ManifestResult struct {
	CarrierManifestID string
}

// CarrierGateway is the outbound contract to a carrier network. One
// implementation exists per carrier; the registry resolves a shipment's
// carrier code to its gateway.
type CarrierGateway interface {
	// CreateShipment runs the carrier's full creation flow for the shipment
	// and returns the carrier-side identifiers. It never partially succeeds
	// from the caller's perspective: any step failure yields an error and no
	// identifiers.
	CreateShipment(ctx context.Context, aggregate *shipment.Shipment) (CreateShipmentResult, error)

	// GetLabel fetches the label document for a linked shipment.
	GetLabel(ctx context.Context, carrierShipmentID string, format label.Format) (LabelDocument, error)

	// Track fetches the tracking history for a tracking number.
	Track(ctx context.Context, trackingNumber string) ([]TrackingRecord, error)

	// Manifest requests a handover manifest for a batch of linked shipments.
	Manifest(ctx context.Context, carrierShipmentIDs []string) (ManifestResult, error)
}

// CarrierRegistry resolves a carrier code to its gateway. Resolution fails
// closed: a code without a wired gateway yields UnknownCarrierError.
type CarrierRegistry interface {
	Resolve(code shipment.CarrierCode) (CarrierGateway, error)
}
