package userrepo

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/user"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new user and returns its identifier.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) (kernel.ID, error) {
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

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByEmail retrieves a user by email. The email is normalized before the lookup.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", email)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns all users ordered by id.
func (r *GormUserRepository) List(ctx context.Context) ([]*user.User, error) {
	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// Delete removes a user by ID.
func (r *GormUserRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&UserDTO{}, id.Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id)
	}

	return nil
}
