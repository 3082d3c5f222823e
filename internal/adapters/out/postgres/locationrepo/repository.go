package locationrepo

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationRepository implements ports.LocationRepository using GORM.
type GormLocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB, tracker aggregateTracker) *GormLocationRepository {
	return &GormLocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new location and returns its identifier.
func (r *GormLocationRepository) Add(ctx context.Context, aggregate *location.Location) (kernel.ID, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, err
	}

	id := kernel.ID(dto.ID)
	r.tracker.TrackAggregate(id, aggregate)
	return id, nil
}

// Get retrieves a location by ID.
func (r *GormLocationRepository) Get(ctx context.Context, id kernel.ID) (*location.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", id)
		}
		return nil, err
	}

	return ToDomain(dto)
}

// ListByOwner returns the owner's locations ordered by id.
func (r *GormLocationRepository) ListByOwner(ctx context.Context, ownerID kernel.ID) ([]*location.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID.Int64()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	locations := make([]*location.Location, 0, len(dtos))
	for _, dto := range dtos {
		l, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return locations, nil
}

// Delete removes a location by ID.
func (r *GormLocationRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&LocationDTO{}, id.Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("location", id)
	}

	return nil
}
