package commands

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrMarkShipmentPickedUpCommandIsNotConstructed = errors.New(
	"MarkShipmentPickedUpCommand must be created via NewMarkShipmentPickedUpCommand constructor",
)

// MarkShipmentPickedUpCommand records that the parcel left its origin. When at is
// nil the handler uses the current time.
type MarkShipmentPickedUpCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	userID     kernel.ID
	at         *time.Time

	guard guard.ConstructorGuard
}

func NewMarkShipmentPickedUpCommand(shipmentID kernel.ID, userID kernel.ID, at *time.Time) (MarkShipmentPickedUpCommand, error) {
	if err := errors.Join(shipmentID.Validate(), userID.Validate()); err != nil {
		return MarkShipmentPickedUpCommand{}, err
	}

	return MarkShipmentPickedUpCommand{
		shipmentID: shipmentID,
		userID:     userID,
		at:         at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MarkShipmentPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkShipmentPickedUpCommandIsNotConstructed)
}

func (c MarkShipmentPickedUpCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c MarkShipmentPickedUpCommand) UserID() kernel.ID     { return c.userID }
func (c MarkShipmentPickedUpCommand) At() *time.Time        { return c.at }
