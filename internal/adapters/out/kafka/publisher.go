// Package kafka publishes shipment integration events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"skybroker/internal/core/domain/model/shipment"
	"skybroker/internal/core/ports"
	"skybroker/internal/pkg/errs"
)

// messageWriter is the subset of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher over a Kafka topic. Messages are
// keyed by shipment id so per-shipment ordering survives partitioning.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher writing to the given brokers and topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewConfigurationError("kafka brokers")
	}
	if topic == "" {
		return nil, errs.NewConfigurationError("kafka topic")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer}, nil
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// PublishStatusChanged emits a status change event keyed by shipment id.
func (p *Publisher) PublishStatusChanged(ctx context.Context, shipmentID string, from, to shipment.Status) error {
	event := ports.ShipmentStatusChanged{
		ShipmentID: shipmentID,
		From:       from.String(),
		To:         to.String(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(shipmentID),
		Value: value,
	})
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
