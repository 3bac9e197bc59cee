// Package manifest contains the Manifest entity: a carrier handover document
// grouping label-ready shipments for a single pickup.
package manifest

import (
	"errors"
	"time"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/errs"
)

// ErrManifestIsNotConstructed is returned when a Manifest instance was not
// created through NewManifest or RestoreManifest.
var ErrManifestIsNotConstructed = errors.New("Manifest must be created via NewManifest or RestoreManifest")

// Manifest groups shipments handed over to a carrier in one batch. The
// carrier-side manifest id is recorded so the physical handover document can
// be retrieved later.
type Manifest struct {
	id                kernel.UUID
	carrierCode       string
	carrierManifestID string
	shipmentIDs       []kernel.UUID
	createdAt         time.Time

	isConstructed bool
}

// NewManifest creates a manifest for a batch of shipments.
func NewManifest(id kernel.UUID, carrierCode, carrierManifestID string,
	shipmentIDs []kernel.UUID) (*Manifest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if carrierCode == "" {
		return nil, errs.NewValueIsRequiredError("manifest carrier code")
	}
	if carrierManifestID == "" {
		return nil, errs.NewValueIsRequiredError("carrier manifest id")
	}
	if len(shipmentIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("manifest shipment ids")
	}
	for _, shipmentID := range shipmentIDs {
		if err := shipmentID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Manifest{
		id:                id,
		carrierCode:       carrierCode,
		carrierManifestID: carrierManifestID,
		shipmentIDs:       shipmentIDs,
		createdAt:         time.Now().UTC(),
		isConstructed:     true,
	}, nil
}

// RestoreManifest reconstructs a manifest from persistence.
func RestoreManifest(id kernel.UUID, carrierCode, carrierManifestID string,
	shipmentIDs []kernel.UUID, createdAt time.Time) (*Manifest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Manifest{
		id:                id,
		carrierCode:       carrierCode,
		carrierManifestID: carrierManifestID,
		shipmentIDs:       shipmentIDs,
		createdAt:         createdAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the manifest was created through a constructor.
func (m *Manifest) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrManifestIsNotConstructed
	}
	return nil
}

// ID returns the manifest's unique identifier.
func (m *Manifest) ID() kernel.UUID { return m.id }

// CarrierCode returns the carrier this manifest was created with.
func (m *Manifest) CarrierCode() string { return m.carrierCode }

// CarrierManifestID returns the carrier-side manifest identifier.
func (m *Manifest) CarrierManifestID() string { return m.carrierManifestID }

// ShipmentIDs returns the shipments included in the handover batch.
func (m *Manifest) ShipmentIDs() []kernel.UUID { return m.shipmentIDs }

// CreatedAt returns the creation timestamp.
func (m *Manifest) CreatedAt() time.Time { return m.createdAt }
