package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/user"
)

// CreateUserCommandHandler creates users. A duplicate email surfaces as the
// repository's duplicate-key error.
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewCreateUserCommandHandler(uowFactory UserUoWFactory) CreateUserCommandHandler {
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.Email(), cmd.Name())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	id, err := userRepo.Add(ctx, u)
	if err != nil {
		return nil, err
	}

	created, err := userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
