// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, handling conversion between domain entities and
// database representations.
package shipmentrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/shipment"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. Status is stored as its wire string so rows stay readable and
// the enum can be reordered without a migration. Version is the optimistic
// concurrency token compared on every update.
type ShipmentDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status            string     `gorm:"type:varchar(32);index"`
	ServiceCode       string     `gorm:"type:varchar(64)"`
	Reference         string     `gorm:"type:varchar(128)"`
	PickupPointID     string     `gorm:"type:varchar(64)"`
	CarrierCode       *string    `gorm:"type:varchar(32)"`
	CarrierShipmentID *string    `gorm:"type:varchar(128);index"`
	TrackingNumber    *string    `gorm:"type:varchar(64);index"`
	PricePLN          *float64
	Sender            AddressDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver          AddressDTO `gorm:"embedded;embeddedPrefix:receiver_"`
	Parcel            ParcelDTO  `gorm:"embedded;embeddedPrefix:parcel_"`
	Metadata          []byte     `gorm:"type:jsonb"`
	Version           int
	CreatedAt         time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// AddressDTO represents an embedded address block within the shipment table.
type AddressDTO struct {
	Name            string `gorm:"type:varchar(128)"`
	Phone           string `gorm:"type:varchar(32)"`
	Email           string `gorm:"type:varchar(128)"`
	Street          string `gorm:"type:varchar(128)"`
	BuildingNumber  string `gorm:"type:varchar(16)"`
	ApartmentNumber string `gorm:"type:varchar(16)"`
	City            string `gorm:"type:varchar(64)"`
	PostalCode      string `gorm:"type:varchar(16)"`
	CountryCode     string `gorm:"type:varchar(2)"`
}

// ParcelDTO represents the embedded parcel description within the shipment table.
type ParcelDTO struct {
	LengthCm *float64
	WidthCm  *float64
	HeightCm *float64
	WeightKg float64
}

func fromDomain(aggregate *shipment.Shipment) (ShipmentDTO, error) {
	var metadata []byte
	if aggregate.Metadata() != nil {
		raw, err := json.Marshal(aggregate.Metadata())
		if err != nil {
			return ShipmentDTO{}, err
		}
		metadata = raw
	}

	var carrierCode *string
	if code := aggregate.CarrierCode(); code != nil {
		value := code.String()
		carrierCode = &value
	}

	return ShipmentDTO{
		ID:                aggregate.ID().Bytes(),
		Status:            aggregate.Status().String(),
		ServiceCode:       aggregate.ServiceCode(),
		Reference:         aggregate.Reference(),
		PickupPointID:     aggregate.PickupPointID(),
		CarrierCode:       carrierCode,
		CarrierShipmentID: aggregate.CarrierShipmentID(),
		TrackingNumber:    aggregate.TrackingNumber(),
		PricePLN:          aggregate.PricePLN(),
		Sender:            addressFromDomain(aggregate.Sender()),
		Receiver:          addressFromDomain(aggregate.Receiver()),
		Parcel: ParcelDTO{
			LengthCm: aggregate.Parcel().LengthCm(),
			WidthCm:  aggregate.Parcel().WidthCm(),
			HeightCm: aggregate.Parcel().HeightCm(),
			WeightKg: aggregate.Parcel().WeightKg(),
		},
		Metadata:  metadata,
		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
	}, nil
}

func addressFromDomain(addr shipment.Address) AddressDTO {
	return AddressDTO{
		Name:            addr.Name(),
		Phone:           addr.Phone(),
		Email:           addr.Email(),
		Street:          addr.Street(),
		BuildingNumber:  addr.BuildingNumber(),
		ApartmentNumber: addr.ApartmentNumber(),
		City:            addr.City(),
		PostalCode:      addr.PostalCode(),
		CountryCode:     addr.CountryCode(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var carrierCode *shipment.CarrierCode
	if dto.CarrierCode != nil {
		code, codeErr := shipment.ParseCarrierCode(*dto.CarrierCode)
		if codeErr != nil {
			return nil, codeErr
		}
		carrierCode = &code
	}

	sender, err := addressToDomain(dto.Sender)
	if err != nil {
		return nil, err
	}
	receiver, err := addressToDomain(dto.Receiver)
	if err != nil {
		return nil, err
	}

	parcel, err := shipment.NewParcel(dto.Parcel.LengthCm, dto.Parcel.WidthCm,
		dto.Parcel.HeightCm, dto.Parcel.WeightKg)
	if err != nil {
		return nil, err
	}

	var metadata map[string]any
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return shipment.RestoreShipment(id, status, dto.ServiceCode, dto.Reference,
		dto.PickupPointID, carrierCode, dto.CarrierShipmentID, dto.TrackingNumber,
		dto.PricePLN, sender, receiver, parcel, metadata, dto.Version, dto.CreatedAt)
}

func addressToDomain(dto AddressDTO) (shipment.Address, error) {
	return shipment.NewAddress(dto.Name, dto.Phone, dto.Email, dto.Street,
		dto.BuildingNumber, dto.ApartmentNumber, dto.City, dto.PostalCode, dto.CountryCode)
}
