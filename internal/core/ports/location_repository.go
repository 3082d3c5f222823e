package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for location aggregates.
type LocationRepository interface {
	// Add persists a new location and returns the assigned identifier.
	Add(ctx context.Context, aggregate *location.Location) (kernel.ID, error)

	// Get retrieves a location by identifier. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.ID) (*location.Location, error)

	// ListByOwner returns the owner's locations ordered by ascending id.
	ListByOwner(ctx context.Context, ownerID kernel.ID) ([]*location.Location, error)

	// Delete removes a location. Returns errs.ErrObjectNotFound when absent.
	Delete(ctx context.Context, id kernel.ID) error
}
