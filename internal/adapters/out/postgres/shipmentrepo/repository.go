package shipmentrepo

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new shipment and returns its identifier.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) (kernel.ID, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Omit("Sender", "Origin", "Destination").Create(&dto).Error; err != nil {
		return 0, err
	}

	id := kernel.ID(dto.ID)
	r.tracker.TrackAggregate(id, aggregate)
	return id, nil
}

// Update writes the mutable columns of an existing shipment.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	columns := mutableColumns(aggregate)
	selected := make([]string, 0, len(columns))
	for name := range columns {
		selected = append(selected, name)
	}

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", aggregate.ID().Int64()).
		Select(selected).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID with both endpoints preloaded.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a shipment by ID.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, id.Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id)
	}

	return nil
}

// ListBySender returns a window of the sender's shipments ordered by id.
func (r *GormShipmentRepository) ListBySender(
	ctx context.Context,
	senderID kernel.ID,
	offset int,
	limit int,
) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		Where("sender_user_id = ?", senderID.Int64()).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListAfter returns up to limit shipments with an id greater than afterID.
func (r *GormShipmentRepository) ListAfter(
	ctx context.Context,
	afterID kernel.ID,
	limit int,
) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID.Int64()).
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ExistsForLocation reports whether any shipment starts or ends at the location.
func (r *GormShipmentRepository) ExistsForLocation(ctx context.Context, locationID kernel.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("origin_location_id = ? OR destination_location_id = ?", locationID.Int64(), locationID.Int64()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func toDomainList(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}
