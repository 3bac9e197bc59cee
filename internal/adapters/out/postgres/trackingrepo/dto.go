// Package trackingrepo provides data transfer objects and mapping functions
// for the append-only tracking event history.
package trackingrepo

import (
	"time"

	"github.com/google/uuid"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/tracking"
)

// TrackingEventDTO represents the database structure for persisting tracking
// events. Rows are insert-only; history corrections come from the carrier as
// new events, never as updates.
type TrackingEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index"`
	CarrierCode string    `gorm:"type:varchar(32)"`
	Status      string    `gorm:"type:varchar(64)"`
	Description string    `gorm:"type:varchar(256)"`
	Location    string    `gorm:"type:varchar(128)"`
	OccurredAt  time.Time `gorm:"index"`
	RecordedAt  time.Time
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(event *tracking.Event) TrackingEventDTO {
	return TrackingEventDTO{
		ID:          event.ID().Bytes(),
		ShipmentID:  event.ShipmentID().Bytes(),
		CarrierCode: event.CarrierCode(),
		Status:      event.Status(),
		Description: event.Description(),
		Location:    event.Location(),
		OccurredAt:  event.OccurredAt(),
		RecordedAt:  event.RecordedAt(),
	}
}

func toDomain(dto TrackingEventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	return tracking.RestoreEvent(id, shipmentID, dto.CarrierCode, dto.Status,
		dto.Description, dto.Location, dto.OccurredAt, dto.RecordedAt)
}
