package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/user"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers a user by email. name is optional.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	email string
	name  *string

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(email string, name *string) (CreateUserCommand, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return CreateUserCommand{}, user.ErrEmailIsRequired
	}

	return CreateUserCommand{
		email: email,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) Email() string { return c.email }
func (c CreateUserCommand) Name() *string { return c.name }
