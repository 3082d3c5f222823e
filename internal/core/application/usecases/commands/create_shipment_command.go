package commands

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request by a sender to ship a parcel from one of
// their locations to any other location.
//
// Example:
//
//	eta := time.Now().Add(6 * time.Hour)
//	cmd, err := NewCreateShipmentCommand(senderID, homeID, officeID, shipment.SizeM, nil, &eta, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	snapshot, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	senderID           kernel.ID
	originID           kernel.ID
	destinationID      kernel.ID
	size               shipment.Size
	pickupAt           *time.Time
	expectedDeliveryAt *time.Time
	notes              *string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates identifiers and size, and rejects an origin equal
// to the destination before any repository is touched.
func NewCreateShipmentCommand(
	senderID kernel.ID,
	originID kernel.ID,
	destinationID kernel.ID,
	size shipment.Size,
	pickupAt *time.Time,
	expectedDeliveryAt *time.Time,
	notes *string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		pickupAt:           pickupAt,
		expectedDeliveryAt: expectedDeliveryAt,
		notes:              notes,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSenderID(senderID),
		cmd.setEndpoints(originID, destinationID),
		cmd.setSize(size),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) SenderID() kernel.ID            { return c.senderID }
func (c CreateShipmentCommand) OriginID() kernel.ID            { return c.originID }
func (c CreateShipmentCommand) DestinationID() kernel.ID       { return c.destinationID }
func (c CreateShipmentCommand) Size() shipment.Size            { return c.size }
func (c CreateShipmentCommand) PickupAt() *time.Time           { return c.pickupAt }
func (c CreateShipmentCommand) ExpectedDeliveryAt() *time.Time { return c.expectedDeliveryAt }
func (c CreateShipmentCommand) Notes() *string                 { return c.notes }

func (c *CreateShipmentCommand) setSenderID(senderID kernel.ID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	c.senderID = senderID
	return nil
}

func (c *CreateShipmentCommand) setEndpoints(originID, destinationID kernel.ID) error {
	if err := errors.Join(originID.Validate(), destinationID.Validate()); err != nil {
		return err
	}
	if originID.IsEqual(destinationID) {
		return shipment.ErrOriginEqualsDestination
	}
	c.originID = originID
	c.destinationID = destinationID
	return nil
}

func (c *CreateShipmentCommand) setSize(size shipment.Size) error {
	if err := size.Validate(); err != nil {
		return err
	}
	c.size = size
	return nil
}
