package commands

import (
	"context"

	"shiptrack/internal/core/domain/services"
)

// RemoveShipmentCommandHandler deletes a sender's shipment. Shipments with a recorded
// pickup are rejected with shipment.ErrShipmentIsPickedUp.
type RemoveShipmentCommandHandler struct {
	uowFactory UoWFactory
}

func NewRemoveShipmentCommandHandler(uowFactory UoWFactory) RemoveShipmentCommandHandler {
	return RemoveShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveShipmentCommandHandler) Handle(ctx context.Context, cmd RemoveShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()

	s, err := services.NewOwnershipGuard(uow.LocationRepository(), shipmentRepo).
		AssertShipmentOwnedBy(ctx, cmd.UserID(), cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = s.EnsureRemovable(); err != nil {
		return err
	}

	if err = shipmentRepo.Delete(ctx, s.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
