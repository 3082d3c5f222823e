package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/services"
)

// RemoveLocationCommandHandler deletes a location owned by the caller. Locations
// referenced by any shipment, as origin or destination, are kept and
// location.ErrLocationIsInUse is returned.
type RemoveLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewRemoveLocationCommandHandler(uowFactory UoWFactory) RemoveLocationCommandHandler {
	return RemoveLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveLocationCommandHandler) Handle(ctx context.Context, cmd RemoveLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locationRepo := uow.LocationRepository()
	shipmentRepo := uow.ShipmentRepository()

	l, err := services.NewOwnershipGuard(locationRepo, shipmentRepo).
		AssertLocationOwnedBy(ctx, cmd.UserID(), cmd.LocationID())
	if err != nil {
		return err
	}

	inUse, err := shipmentRepo.ExistsForLocation(ctx, l.ID())
	if err != nil {
		return err
	}
	if inUse {
		return location.ErrLocationIsInUse
	}

	if err = locationRepo.Delete(ctx, l.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
