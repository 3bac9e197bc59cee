// Package paymentrepo provides data transfer objects and mapping functions
// for payment attempt persistence.
package paymentrepo

import (
	"time"

	"github.com/google/uuid"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/payment"
)

// PaymentDTO represents the database structure for persisting payment attempts.
type PaymentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index"`
	Provider    string    `gorm:"type:varchar(64)"`
	AmountPLN   float64
	Status      string `gorm:"type:varchar(32)"`
	ExternalRef string `gorm:"type:varchar(128)"`
	CreatedAt   time.Time
	SettledAt   *time.Time
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(entity *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          entity.ID().Bytes(),
		ShipmentID:  entity.ShipmentID().Bytes(),
		Provider:    entity.Provider(),
		AmountPLN:   entity.AmountPLN(),
		Status:      entity.Status().String(),
		ExternalRef: entity.ExternalRef(),
		CreatedAt:   entity.CreatedAt(),
		SettledAt:   entity.SettledAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, shipmentID, dto.Provider, dto.AmountPLN,
		status, dto.ExternalRef, dto.CreatedAt, dto.SettledAt)
}
