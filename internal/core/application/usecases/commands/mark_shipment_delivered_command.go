package commands

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrMarkShipmentDeliveredCommandIsNotConstructed = errors.New(
	"MarkShipmentDeliveredCommand must be created via NewMarkShipmentDeliveredCommand constructor",
)

// MarkShipmentDeliveredCommand records that the parcel reached its destination. When
// at is nil the handler uses the current time.
type MarkShipmentDeliveredCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	userID     kernel.ID
	at         *time.Time

	guard guard.ConstructorGuard
}

func NewMarkShipmentDeliveredCommand(shipmentID kernel.ID, userID kernel.ID, at *time.Time) (MarkShipmentDeliveredCommand, error) {
	if err := errors.Join(shipmentID.Validate(), userID.Validate()); err != nil {
		return MarkShipmentDeliveredCommand{}, err
	}

	return MarkShipmentDeliveredCommand{
		shipmentID: shipmentID,
		userID:     userID,
		at:         at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MarkShipmentDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkShipmentDeliveredCommandIsNotConstructed)
}

func (c MarkShipmentDeliveredCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c MarkShipmentDeliveredCommand) UserID() kernel.ID     { return c.userID }
func (c MarkShipmentDeliveredCommand) At() *time.Time        { return c.at }
