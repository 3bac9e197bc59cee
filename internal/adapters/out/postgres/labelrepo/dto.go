// Package labelrepo provides data transfer objects and mapping functions
// for label record persistence.
package labelrepo

import (
	"time"

	"github.com/google/uuid"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
)

// LabelDTO represents the database structure for persisting label records.
// The document itself lives in object storage; only the key is stored here.
type LabelDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;index"`
	Format     string    `gorm:"type:varchar(8)"`
	StorageKey string    `gorm:"type:varchar(256)"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for label entities.
func (LabelDTO) TableName() string {
	return "labels"
}

func fromDomain(entity *label.Label) LabelDTO {
	return LabelDTO{
		ID:         entity.ID().Bytes(),
		ShipmentID: entity.ShipmentID().Bytes(),
		Format:     entity.Format().String(),
		StorageKey: entity.StorageKey(),
		CreatedAt:  entity.CreatedAt(),
	}
}

func toDomain(dto LabelDTO) (*label.Label, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	format, err := label.ParseFormat(dto.Format)
	if err != nil {
		return nil, err
	}

	return label.RestoreLabel(id, shipmentID, format, dto.StorageKey, dto.CreatedAt)
}
