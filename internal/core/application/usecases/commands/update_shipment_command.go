package commands

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// ShipmentPatch lists the fields a sender may change after creation. A nil field is
// left untouched. Origin and sender are not part of the patch.
type ShipmentPatch struct {
	DestinationID      *kernel.ID
	Size               *shipment.Size
	ExpectedDeliveryAt *time.Time
	// ClearExpectedDeliveryAt removes the promised delivery time.
	ClearExpectedDeliveryAt bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ShipmentPatch) IsEmpty() bool {
	return p.DestinationID == nil && p.Size == nil && p.ExpectedDeliveryAt == nil && !p.ClearExpectedDeliveryAt
}

// UpdateShipmentCommand applies a partial update to a shipment owned by the caller.
//
// Example:
//
//	size := shipment.SizeL
//	cmd, err := NewUpdateShipmentCommand(shipmentID, userID, ShipmentPatch{Size: &size})
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	userID     kernel.ID
	patch      ShipmentPatch

	guard guard.ConstructorGuard
}

// NewUpdateShipmentCommand validates identifiers and every field present in the patch.
func NewUpdateShipmentCommand(shipmentID kernel.ID, userID kernel.ID, patch ShipmentPatch) (UpdateShipmentCommand, error) {
	cmd := UpdateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		userID.Validate(),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}

	cmd.shipmentID = shipmentID
	cmd.userID = userID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c UpdateShipmentCommand) UserID() kernel.ID     { return c.userID }
func (c UpdateShipmentCommand) Patch() ShipmentPatch  { return c.patch }

func (c *UpdateShipmentCommand) setPatch(patch ShipmentPatch) error {
	var errList []error

	if patch.DestinationID != nil {
		errList = append(errList, patch.DestinationID.Validate())
	}
	if patch.Size != nil {
		errList = append(errList, patch.Size.Validate())
	}
	if patch.ExpectedDeliveryAt != nil && patch.ClearExpectedDeliveryAt {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"expectedDeliveryAt", errors.New("cannot both set and clear the expected delivery time")))
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.patch = patch
	return nil
}
