package queries

import (
	"errors"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/pkg/guard"
)

var ErrGetLabelQueryIsNotConstructed = errors.New(
	"GetLabelQuery must be created via NewGetLabelQuery constructor",
)

// GetLabelQuery retrieves the latest stored label document for a shipment,
// optionally restricted to one format.
type GetLabelQuery struct {
	shipmentID kernel.UUID
	format     *label.Format

	guard guard.ConstructorGuard
}

// NewGetLabelQuery creates a query for a shipment's latest label. A non-nil
// format restricts the lookup to labels stored in that format.
func NewGetLabelQuery(shipmentID kernel.UUID, format *label.Format) (GetLabelQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetLabelQuery{}, err
	}
	if format != nil {
		if err := format.Validate(); err != nil {
			return GetLabelQuery{}, err
		}
	}

	return GetLabelQuery{
		shipmentID: shipmentID,
		format:     format,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLabelQuery) Validate() error {
	return q.guard.Validate(ErrGetLabelQueryIsNotConstructed)
}

// ShipmentID returns the shipment whose label is requested.
func (q GetLabelQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// Format returns the requested label format, or nil for latest-of-any.
func (q GetLabelQuery) Format() *label.Format {
	return q.format
}

// GetLabelQueryResponse carries the label document and its content type.
type GetLabelQueryResponse struct {
	Format   label.Format
	MimeType string
	Content  []byte
}
