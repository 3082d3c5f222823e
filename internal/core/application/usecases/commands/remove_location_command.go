package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrRemoveLocationCommandIsNotConstructed = errors.New(
	"RemoveLocationCommand must be created via NewRemoveLocationCommand constructor",
)

// RemoveLocationCommand deletes one of the caller's locations.
type RemoveLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.ID
	userID     kernel.ID

	guard guard.ConstructorGuard
}

func NewRemoveLocationCommand(locationID kernel.ID, userID kernel.ID) (RemoveLocationCommand, error) {
	if err := errors.Join(locationID.Validate(), userID.Validate()); err != nil {
		return RemoveLocationCommand{}, err
	}

	return RemoveLocationCommand{
		locationID: locationID,
		userID:     userID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveLocationCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLocationCommandIsNotConstructed)
}

func (c RemoveLocationCommand) LocationID() kernel.ID { return c.locationID }
func (c RemoveLocationCommand) UserID() kernel.ID     { return c.userID }
