package label

import (
	"errors"
	"fmt"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/errs"
)

// ErrLabelIsNotConstructed is returned when a Label instance was not created
// through NewLabel or RestoreLabel.
var ErrLabelIsNotConstructed = errors.New("Label must be created via NewLabel or RestoreLabel")

// Format identifies a printable label format.
type Format string

const (
	// FormatA4 is a full-page PDF label.
	FormatA4 Format = "A4"

	// FormatA6 is the default quarter-page PDF label.
	FormatA6 Format = "A6"

	// FormatZPL is a raw printer command stream for thermal printers.
	FormatZPL Format = "ZPL"
)

// ParseFormat converts a request-supplied format string into a Format.
// An empty string selects the default A6.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatA6, nil
	case FormatA4, FormatA6, FormatZPL:
		return Format(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("label format",
			fmt.Errorf("%q is not a supported label format", s))
	}
}

// String returns the canonical representation of the format.
func (f Format) String() string {
	return string(f)
}

// MimeType returns the content type of a label document in this format.
func (f Format) MimeType() string {
	if f == FormatZPL {
		return "text/plain"
	}
	return "application/pdf"
}

// Validate checks that the format is a member of the supported set.
func (f Format) Validate() error {
	_, err := ParseFormat(string(f))
	if err != nil {
		return err
	}
	if f == "" {
		return errs.NewValueIsRequiredError("label format")
	}
	return nil
}

// Label is an immutable record of a stored label document. The document bytes
// live in the blob store; the entity carries the storage key.
type Label struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	format     Format
	storageKey string
	createdAt  time.Time

	isConstructed bool
}

// NewLabel creates a label record pointing at a stored document.
func NewLabel(id kernel.UUID, shipmentID kernel.UUID, format Format, storageKey string) (*Label, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if storageKey == "" {
		return nil, errs.NewValueIsRequiredError("label storage key")
	}

	return &Label{
		id:            id,
		shipmentID:    shipmentID,
		format:        format,
		storageKey:    storageKey,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreLabel reconstructs a label record from persistence.
func RestoreLabel(id kernel.UUID, shipmentID kernel.UUID, format Format,
	storageKey string, createdAt time.Time) (*Label, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &Label{
		id:            id,
		shipmentID:    shipmentID,
		format:        format,
		storageKey:    storageKey,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the label was created through a constructor.
func (l *Label) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLabelIsNotConstructed
	}
	return nil
}

// ID returns the label's unique identifier.
func (l *Label) ID() kernel.UUID { return l.id }

// ShipmentID returns the shipment the label belongs to.
func (l *Label) ShipmentID() kernel.UUID { return l.shipmentID }

// Format returns the label format.
func (l *Label) Format() Format { return l.format }

// StorageKey returns the blob store key of the document.
func (l *Label) StorageKey() string { return l.storageKey }

// CreatedAt returns the creation timestamp.
func (l *Label) CreatedAt() time.Time { return l.createdAt }
