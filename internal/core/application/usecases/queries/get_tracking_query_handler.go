package queries

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/tracking"
	"skybroker/internal/core/ports"
)

// GetTrackingQueryHandler reads a shipment's tracking history through the
// cache, falling back to the database on a miss or a cache failure. A
// successful database read refills the cache.
type GetTrackingQueryHandler struct {
	db     *gorm.DB
	cache  ports.TrackingCache
	logger *slog.Logger
}

// NewGetTrackingQueryHandler creates a handler for tracking history reads.
func NewGetTrackingQueryHandler(db *gorm.DB, cache ports.TrackingCache,
	logger *slog.Logger) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db, cache: cache, logger: logger}
}

// Handle executes the query. An empty history is a valid response, not an
// error: a shipment without carrier reports simply has no events yet.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) ([]GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		cached, ok, err := h.cache.Get(ctx, query.ShipmentID())
		if err != nil {
			h.logger.WarnContext(ctx, "tracking cache read failed, falling back to database",
				"shipment_id", query.ShipmentID().String(), "error", err)
		} else if ok {
			return toTrackingResponses(cached), nil
		}
	}

	events, err := h.readHistory(ctx, query.ShipmentID())
	if err != nil {
		return nil, err
	}

	if h.cache != nil && len(events) > 0 {
		if err = h.cache.Set(ctx, query.ShipmentID(), events); err != nil {
			h.logger.WarnContext(ctx, "failed to refill tracking cache",
				"shipment_id", query.ShipmentID().String(), "error", err)
		}
	}

	return toTrackingResponses(events), nil
}

func (h GetTrackingQueryHandler) readHistory(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.Event, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			carrier_code,
			status,
			description,
			location,
			occurred_at,
			recorded_at
		FROM tracking_events
		WHERE shipment_id = ?
		ORDER BY occurred_at
	`, shipmentID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*tracking.Event, 0)
	for rows.Next() {
		var idStr, carrierCode, status, description, location string
		var occurredAt, recordedAt time.Time
		if err = rows.Scan(&idStr, &carrierCode, &status, &description,
			&location, &occurredAt, &recordedAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromString(idStr)
		if idErr != nil {
			return nil, idErr
		}

		event, restoreErr := tracking.RestoreEvent(id, shipmentID, carrierCode,
			status, description, location, occurredAt, recordedAt)
		if restoreErr != nil {
			return nil, restoreErr
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func toTrackingResponses(events []*tracking.Event) []GetTrackingQueryResponse {
	responses := make([]GetTrackingQueryResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, GetTrackingQueryResponse{
			Status:      event.Status(),
			Description: event.Description(),
			Location:    event.Location(),
			OccurredAt:  event.OccurredAt(),
		})
	}
	return responses
}
