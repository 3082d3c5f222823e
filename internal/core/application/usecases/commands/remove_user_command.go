package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrRemoveUserCommandIsNotConstructed = errors.New(
	"RemoveUserCommand must be created via NewRemoveUserCommand constructor",
)

// RemoveUserCommand deletes a user account. Only the user themselves may do it.
type RemoveUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.ID
	callerID kernel.ID

	guard guard.ConstructorGuard
}

func NewRemoveUserCommand(userID kernel.ID, callerID kernel.ID) (RemoveUserCommand, error) {
	if err := errors.Join(userID.Validate(), callerID.Validate()); err != nil {
		return RemoveUserCommand{}, err
	}

	return RemoveUserCommand{
		userID:   userID,
		callerID: callerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveUserCommand) Validate() error {
	return c.guard.Validate(ErrRemoveUserCommandIsNotConstructed)
}

func (c RemoveUserCommand) UserID() kernel.ID   { return c.userID }
func (c RemoveUserCommand) CallerID() kernel.ID { return c.callerID }
