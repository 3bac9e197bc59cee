// Package manifestrepo provides data transfer objects and mapping functions
// for handover manifest persistence.
package manifestrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/manifest"
)

// ManifestDTO represents the database structure for persisting manifests.
// The covered shipment IDs are stored as a JSON array; manifests are written
// once at handover and read back whole, never queried by member.
type ManifestDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierCode       string    `gorm:"type:varchar(32)"`
	CarrierManifestID string    `gorm:"type:varchar(128)"`
	ShipmentIDs       []byte    `gorm:"type:jsonb"`
	CreatedAt         time.Time
}

// TableName specifies the database table name for manifest entities.
func (ManifestDTO) TableName() string {
	return "manifests"
}

func fromDomain(entity *manifest.Manifest) (ManifestDTO, error) {
	ids := make([]string, 0, len(entity.ShipmentIDs()))
	for _, id := range entity.ShipmentIDs() {
		ids = append(ids, id.String())
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return ManifestDTO{}, err
	}

	return ManifestDTO{
		ID:                entity.ID().Bytes(),
		CarrierCode:       entity.CarrierCode(),
		CarrierManifestID: entity.CarrierManifestID(),
		ShipmentIDs:       raw,
		CreatedAt:         entity.CreatedAt(),
	}, nil
}

func toDomain(dto ManifestDTO) (*manifest.Manifest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var rawIDs []string
	if err = json.Unmarshal(dto.ShipmentIDs, &rawIDs); err != nil {
		return nil, err
	}
	shipmentIDs := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		shipmentID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		shipmentIDs = append(shipmentIDs, shipmentID)
	}

	return manifest.RestoreManifest(id, dto.CarrierCode, dto.CarrierManifestID,
		shipmentIDs, dto.CreatedAt)
}
