package services

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"
)

// LocationGetter loads a location by id. It must return an error wrapping
// errs.ErrObjectNotFound when the location does not exist.
type LocationGetter interface {
	Get(ctx context.Context, id kernel.ID) (*location.Location, error)
}

// ShipmentGetter loads a shipment by id. It must return an error wrapping
// errs.ErrObjectNotFound when the shipment does not exist.
type ShipmentGetter interface {
	Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error)
}

// OwnershipGuard answers "does user U own X" before a mutation touches X.
//
// Every check loads the object first, so the outcomes are:
//   - the object, when it exists and belongs to the user
//   - an errs.ErrObjectNotFound error, when it does not exist
//   - an errs.ErrForbidden error, when it belongs to somebody else
//
// The guard should be built from repositories bound to the same unit of work as
// the write that follows, so the check and the write are atomic.
//
// Example:
//
//	g := services.NewOwnershipGuard(uow.LocationRepository(), uow.ShipmentRepository())
//	s, err := g.AssertShipmentOwnedBy(ctx, userID, shipmentID)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // caller is not the sender
//	}
type OwnershipGuard struct {
	locations LocationGetter
	shipments ShipmentGetter
}

// NewOwnershipGuard creates a guard reading through the given repositories.
func NewOwnershipGuard(locations LocationGetter, shipments ShipmentGetter) OwnershipGuard {
	return OwnershipGuard{
		locations: locations,
		shipments: shipments,
	}
}

// AssertLocationOwnedBy returns the location if userID owns it.
func (g OwnershipGuard) AssertLocationOwnedBy(
	ctx context.Context,
	userID kernel.ID,
	locationID kernel.ID,
) (*location.Location, error) {
	return g.assertLocation(ctx, "location", userID, locationID)
}

// AssertOriginOwnedBy is AssertLocationOwnedBy for the origin of a new shipment.
// Destinations are never checked: the recipient need not be the sender.
func (g OwnershipGuard) AssertOriginOwnedBy(
	ctx context.Context,
	userID kernel.ID,
	originID kernel.ID,
) (*location.Location, error) {
	return g.assertLocation(ctx, "originLocationId", userID, originID)
}

// AssertShipmentOwnedBy returns the shipment if userID is its sender.
func (g OwnershipGuard) AssertShipmentOwnedBy(
	ctx context.Context,
	userID kernel.ID,
	shipmentID kernel.ID,
) (*shipment.Shipment, error) {
	s, err := g.shipments.Get(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if !s.IsSentBy(userID) {
		return nil, errs.NewForbiddenError("shipment", shipmentID)
	}
	return s, nil
}

func (g OwnershipGuard) assertLocation(
	ctx context.Context,
	paramName string,
	userID kernel.ID,
	locationID kernel.ID,
) (*location.Location, error) {
	l, err := g.locations.Get(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(userID) {
		return nil, errs.NewForbiddenError(paramName, locationID)
	}
	return l, nil
}
