package ports

import (
	"context"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment attempts.
type PaymentRepository interface {
	// Add persists a new payment attempt.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment attempt.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment attempt by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetLatestByShipment retrieves the most recently created payment attempt
	// for a shipment. Returns errs.ObjectNotFoundError when none exists.
	GetLatestByShipment(ctx context.Context, shipmentID kernel.UUID) (*payment.Payment, error)
}
