package queries

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery reads one shipment of the caller.
type GetShipmentQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	userID     kernel.ID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID kernel.ID, userID kernel.ID) (GetShipmentQuery, error) {
	if err := errors.Join(shipmentID.Validate(), userID.Validate()); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{
		shipmentID: shipmentID,
		userID:     userID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ShipmentID() kernel.ID { return q.shipmentID }
func (q GetShipmentQuery) UserID() kernel.ID     { return q.userID }

// GetShipmentQueryHandler returns a shipment with its derived status. Shipments of
// other senders are reported as forbidden, the same as for mutations.
type GetShipmentQueryHandler struct {
	locations services.LocationGetter
	shipments services.ShipmentGetter
	clock     kernel.Clock
}

func NewGetShipmentQueryHandler(
	locations services.LocationGetter,
	shipments services.ShipmentGetter,
	clock kernel.Clock,
) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{
		locations: locations,
		shipments: shipments,
		clock:     clock,
	}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (shipment.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return shipment.Snapshot{}, err
	}

	s, err := services.NewOwnershipGuard(h.locations, h.shipments).
		AssertShipmentOwnedBy(ctx, query.UserID(), query.ShipmentID())
	if err != nil {
		return shipment.Snapshot{}, err
	}

	return s.Snapshot(h.clock.Now()), nil
}
