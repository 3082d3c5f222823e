package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrRemoveShipmentCommandIsNotConstructed = errors.New(
	"RemoveShipmentCommand must be created via NewRemoveShipmentCommand constructor",
)

// RemoveShipmentCommand deletes a shipment that has not been picked up yet.
type RemoveShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	userID     kernel.ID

	guard guard.ConstructorGuard
}

func NewRemoveShipmentCommand(shipmentID kernel.ID, userID kernel.ID) (RemoveShipmentCommand, error) {
	if err := errors.Join(shipmentID.Validate(), userID.Validate()); err != nil {
		return RemoveShipmentCommand{}, err
	}

	return RemoveShipmentCommand{
		shipmentID: shipmentID,
		userID:     userID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveShipmentCommandIsNotConstructed)
}

func (c RemoveShipmentCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c RemoveShipmentCommand) UserID() kernel.ID     { return c.userID }
