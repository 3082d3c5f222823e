package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Status is never part of it: repositories store and return timestamps only.
type ShipmentRepository interface {
	// Add persists a new shipment and returns the assigned identifier.
	Add(ctx context.Context, aggregate *shipment.Shipment) (kernel.ID, error)

	// Update persists the mutable fields of an existing shipment: destination, size,
	// pickupAt, expectedDeliveryAt and deliveredAt. Sender and origin are never written.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment with its origin and destination loaded.
	// Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error)

	// Delete removes a shipment. Returns errs.ErrObjectNotFound when absent.
	Delete(ctx context.Context, id kernel.ID) error

	// ListBySender returns a window of the sender's shipments ordered by ascending id,
	// with origin and destination loaded.
	//
	// Example:
	//   // third page of 20
	//   items, err := repo.ListBySender(ctx, userID, 40, 20)
	ListBySender(ctx context.Context, senderID kernel.ID, offset int, limit int) ([]*shipment.Shipment, error)

	// ListAfter returns up to limit shipments of every sender with an id greater than
	// afterID, ordered by ascending id. Endpoints are not loaded.
	ListAfter(ctx context.Context, afterID kernel.ID, limit int) ([]*shipment.Shipment, error)

	// ExistsForLocation reports whether any shipment uses the location as origin or destination.
	ExistsForLocation(ctx context.Context, locationID kernel.ID) (bool, error)
}
