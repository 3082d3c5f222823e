package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
)

// MarkShipmentPickedUpCommandHandler sets the pickup time of a sender's shipment.
//
// With shipment.Permissive a repeated pickup silently overwrites the previous one;
// with shipment.Strict it is rejected.
//
// Example:
//
//	handler := NewMarkShipmentPickedUpCommandHandler(uowFactory, kernel.SystemClock{}, shipment.Permissive)
//	cmd, _ := NewMarkShipmentPickedUpCommand(shipmentID, userID, nil)
//	snapshot, err := handler.Handle(ctx, cmd)
//	// snapshot.Status == shipment.InTransit
type MarkShipmentPickedUpCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	policy     shipment.TransitionPolicy
}

func NewMarkShipmentPickedUpCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	policy shipment.TransitionPolicy,
) MarkShipmentPickedUpCommandHandler {
	return MarkShipmentPickedUpCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
	}
}

func (h MarkShipmentPickedUpCommandHandler) Handle(
	ctx context.Context,
	cmd MarkShipmentPickedUpCommand,
) (shipment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Snapshot{}, err
	}

	return transition(ctx, h.uowFactory, h.clock, cmd.UserID(), cmd.ShipmentID(),
		func(s *shipment.Shipment, now time.Time) error {
			return s.MarkPickedUp(timeOrNow(cmd.At(), now), h.policy)
		})
}

// MarkShipmentDeliveredCommandHandler sets the delivery time of a sender's shipment.
//
// With shipment.Permissive delivery is accepted even without a recorded pickup;
// with shipment.Strict the shipment must be picked up first.
type MarkShipmentDeliveredCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	policy     shipment.TransitionPolicy
}

func NewMarkShipmentDeliveredCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	policy shipment.TransitionPolicy,
) MarkShipmentDeliveredCommandHandler {
	return MarkShipmentDeliveredCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
	}
}

func (h MarkShipmentDeliveredCommandHandler) Handle(
	ctx context.Context,
	cmd MarkShipmentDeliveredCommand,
) (shipment.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Snapshot{}, err
	}

	return transition(ctx, h.uowFactory, h.clock, cmd.UserID(), cmd.ShipmentID(),
		func(s *shipment.Shipment, now time.Time) error {
			return s.MarkDelivered(timeOrNow(cmd.At(), now), h.policy)
		})
}

// transition runs an ownership-checked mutation of one shipment inside a unit of work.
// now is read once and used both as the default timestamp and for the returned status.
func transition(
	ctx context.Context,
	uowFactory UoWFactory,
	clock kernel.Clock,
	userID kernel.ID,
	shipmentID kernel.ID,
	mutate func(s *shipment.Shipment, now time.Time) error,
) (shipment.Snapshot, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	s, err := services.NewOwnershipGuard(uow.LocationRepository(), shipmentRepo).
		AssertShipmentOwnedBy(ctx, userID, shipmentID)
	if err != nil {
		return shipment.Snapshot{}, err
	}

	now := clock.Now()
	if err = mutate(s, now); err != nil {
		return shipment.Snapshot{}, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return shipment.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.Snapshot{}, err
	}

	return s.Snapshot(now), nil
}

func timeOrNow(at *time.Time, now time.Time) time.Time {
	if at != nil {
		return *at
	}
	return now
}
