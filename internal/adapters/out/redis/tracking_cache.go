// Package redis caches tracking histories in Redis. The cache sits in front
// of the tracking repository; it is never the source of truth.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/tracking"
)

const keyPrefix = "tracking:"

// TrackingCache implements ports.TrackingCache over a Redis client.
// Entries expire after the configured TTL so a lost invalidation only delays
// freshness, never poisons it permanently.
type TrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTrackingCache creates a tracking cache with the given TTL.
func NewTrackingCache(client *redis.Client, ttl time.Duration) *TrackingCache {
	return &TrackingCache{client: client, ttl: ttl}
}

// cachedEvent is the wire form of a tracking event in Redis.
type cachedEvent struct {
	ID          string    `json:"id"`
	ShipmentID  string    `json:"shipment_id"`
	CarrierCode string    `json:"carrier_code"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Get returns the cached history for a shipment. A missing key is a plain
// miss; a corrupt entry is dropped and reported as a miss as well.
func (c *TrackingCache) Get(ctx context.Context, shipmentID kernel.UUID) ([]*tracking.Event, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(shipmentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cached []cachedEvent
	if err := json.Unmarshal(raw, &cached); err != nil {
		_ = c.client.Del(ctx, cacheKey(shipmentID)).Err()
		return nil, false, nil
	}

	events := make([]*tracking.Event, 0, len(cached))
	for _, entry := range cached {
		event, restoreErr := restoreCached(entry)
		if restoreErr != nil {
			_ = c.client.Del(ctx, cacheKey(shipmentID)).Err()
			return nil, false, nil
		}
		events = append(events, event)
	}
	return events, true, nil
}

// Set replaces the cached history for a shipment.
func (c *TrackingCache) Set(ctx context.Context, shipmentID kernel.UUID, events []*tracking.Event) error {
	cached := make([]cachedEvent, 0, len(events))
	for _, event := range events {
		cached = append(cached, cachedEvent{
			ID:          event.ID().String(),
			ShipmentID:  event.ShipmentID().String(),
			CarrierCode: event.CarrierCode(),
			Status:      event.Status(),
			Description: event.Description(),
			Location:    event.Location(),
			OccurredAt:  event.OccurredAt(),
			RecordedAt:  event.RecordedAt(),
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(shipmentID), raw, c.ttl).Err()
}

// Invalidate drops the cached history for a shipment.
func (c *TrackingCache) Invalidate(ctx context.Context, shipmentID kernel.UUID) error {
	return c.client.Del(ctx, cacheKey(shipmentID)).Err()
}

func cacheKey(shipmentID kernel.UUID) string {
	return keyPrefix + shipmentID.String()
}

func restoreCached(entry cachedEvent) (*tracking.Event, error) {
	id, err := kernel.UUIDFromString(entry.ID)
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromString(entry.ShipmentID)
	if err != nil {
		return nil, err
	}
	return tracking.RestoreEvent(id, shipmentID, entry.CarrierCode, entry.Status,
		entry.Description, entry.Location, entry.OccurredAt, entry.RecordedAt)
}
