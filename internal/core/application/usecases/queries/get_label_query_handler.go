package queries

import (
	"context"

	"gorm.io/gorm"

	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/core/ports"
	"skybroker/internal/pkg/errs"
)

// GetLabelQueryHandler reads the latest label record for a shipment and
// fetches the document bytes from the blob store.
type GetLabelQueryHandler struct {
	db    *gorm.DB
	store ports.LabelStore
}

// NewGetLabelQueryHandler creates a handler for label downloads.
func NewGetLabelQueryHandler(db *gorm.DB, store ports.LabelStore) GetLabelQueryHandler {
	return GetLabelQueryHandler{db: db, store: store}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// shipment has no stored label yet.
func (h GetLabelQueryHandler) Handle(
	ctx context.Context,
	query GetLabelQuery,
) (GetLabelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLabelQueryResponse{}, err
	}

	sql := `
		SELECT
			format,
			storage_key
		FROM labels
		WHERE shipment_id = ?
	`
	args := []any{query.ShipmentID().String()}
	if query.Format() != nil {
		sql += ` AND format = ?`
		args = append(args, query.Format().String())
	}
	sql += ` ORDER BY created_at DESC LIMIT 1`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return GetLabelQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetLabelQueryResponse{}, err
		}
		return GetLabelQueryResponse{},
			errs.NewObjectNotFoundError("label", query.ShipmentID())
	}

	var format, storageKey string
	if err = rows.Scan(&format, &storageKey); err != nil {
		return GetLabelQueryResponse{}, err
	}

	labelFormat, err := label.ParseFormat(format)
	if err != nil {
		return GetLabelQueryResponse{}, err
	}

	content, err := h.store.Get(ctx, storageKey)
	if err != nil {
		return GetLabelQueryResponse{}, err
	}

	return GetLabelQueryResponse{
		Format:   labelFormat,
		MimeType: labelFormat.MimeType(),
		Content:  content,
	}, nil
}
