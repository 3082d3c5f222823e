package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
)

// CreateShipmentCommandHandler creates shipments after checking that the sender owns
// the origin and that the destination exists.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, kernel.SystemClock{})
//	snapshot, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrForbidden):
//	    // origin belongs to another user
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // origin or destination does not exist
//	}
//	fmt.Println(snapshot.Shipment.ID(), snapshot.Status)
type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle persists the shipment and returns it reloaded with its endpoints and the
// status derived for it right after the write.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (shipment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locationRepo := uow.LocationRepository()
	shipmentRepo := uow.ShipmentRepository()

	if _, err := services.NewOwnershipGuard(locationRepo, shipmentRepo).
		AssertOriginOwnedBy(ctx, cmd.SenderID(), cmd.OriginID()); err != nil {
		return shipment.Snapshot{}, err
	}

	if _, err := locationRepo.Get(ctx, cmd.DestinationID()); err != nil {
		return shipment.Snapshot{}, err
	}

	s, err := shipment.NewShipment(
		cmd.SenderID(),
		cmd.OriginID(),
		cmd.DestinationID(),
		cmd.Size(),
		cmd.PickupAt(),
		cmd.ExpectedDeliveryAt(),
		cmd.Notes(),
	)
	if err != nil {
		return shipment.Snapshot{}, err
	}

	id, err := shipmentRepo.Add(ctx, s)
	if err != nil {
		return shipment.Snapshot{}, err
	}

	created, err := shipmentRepo.Get(ctx, id)
	if err != nil {
		return shipment.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.Snapshot{}, err
	}

	return created.Snapshot(h.clock.Now()), nil
}
