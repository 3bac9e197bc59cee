package labelrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skybroker/internal/core/domain/model/kernel"
	"skybroker/internal/core/domain/model/label"
	"skybroker/internal/pkg/errs"
)

// GormLabelRepository implements LabelRepository using GORM. Label records
// are immutable, so the repository only inserts and reads.
type GormLabelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLabelRepository creates a new GORM label repository.
func NewGormLabelRepository(db *gorm.DB, tracker aggregateTracker) *GormLabelRepository {
	return &GormLabelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new label record to the database.
func (r *GormLabelRepository) Add(ctx context.Context, entity *label.Label) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// GetLatestByShipment retrieves the most recently stored label for a shipment.
func (r *GormLabelRepository) GetLatestByShipment(ctx context.Context, shipmentID kernel.UUID) (*label.Label, error) {
	var dto LabelDTO

	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("label for shipment", shipmentID)
		}
		return nil, err
	}

	entity, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return entity, nil
}
