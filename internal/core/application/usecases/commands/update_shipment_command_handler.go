package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
)

// UpdateShipmentCommandHandler applies partial updates to a sender's shipment.
// A new destination must exist and must differ from the origin.
type UpdateShipmentCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewUpdateShipmentCommandHandler creates a handler for shipment updates.
func NewUpdateShipmentCommandHandler(uowFactory UoWFactory, clock kernel.Clock) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle checks ownership, applies the patch and returns the updated shipment with a
// freshly derived status.
func (h UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) (shipment.Snapshot, error) {
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

	s, err := services.NewOwnershipGuard(locationRepo, shipmentRepo).
		AssertShipmentOwnedBy(ctx, cmd.UserID(), cmd.ShipmentID())
	if err != nil {
		return shipment.Snapshot{}, err
	}

	patch := cmd.Patch()
	if patch.DestinationID != nil {
		if err = s.ChangeDestination(*patch.DestinationID); err != nil {
			return shipment.Snapshot{}, err
		}
		if _, err = locationRepo.Get(ctx, *patch.DestinationID); err != nil {
			return shipment.Snapshot{}, err
		}
	}
	if patch.Size != nil {
		if err = s.ChangeSize(*patch.Size); err != nil {
			return shipment.Snapshot{}, err
		}
	}
	if patch.ExpectedDeliveryAt != nil || patch.ClearExpectedDeliveryAt {
		s.ChangeExpectedDeliveryAt(patch.ExpectedDeliveryAt)
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return shipment.Snapshot{}, err
	}

	updated, err := shipmentRepo.Get(ctx, s.ID())
	if err != nil {
		return shipment.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.Snapshot{}, err
	}

	return updated.Snapshot(h.clock.Now()), nil
}
