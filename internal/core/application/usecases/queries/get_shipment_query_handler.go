package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/pkg/errs"
)

// GetShipmentQueryHandler reads one shipment row from the database.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment lookups.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// shipment does not exist.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			service_code,
			reference,
			pickup_point_id,
			carrier_code,
			carrier_shipment_id,
			tracking_number,
			price_pln,
			created_at
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().String()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		return GetShipmentQueryResponse{},
			errs.NewObjectNotFoundError("shipment", query.ShipmentID())
	}

	var resp GetShipmentQueryResponse
	var id uuid.UUID
	if err = rows.Scan(
		&id,
		&resp.Status,
		&resp.ServiceCode,
		&resp.Reference,
		&resp.PickupPointID,
		&resp.CarrierCode,
		&resp.CarrierShipmentID,
		&resp.TrackingNumber,
		&resp.PricePLN,
		&resp.CreatedAt,
	); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	resp.ID = shipmentID

	return resp, nil
}
