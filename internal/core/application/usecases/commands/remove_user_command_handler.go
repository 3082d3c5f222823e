package commands

import (
	"context"

	"shiptrack/internal/pkg/errs"
)

// RemoveUserCommandHandler deletes the caller's own account. Users still owning
// locations or shipments are rejected by the repository's referential integrity.
type RemoveUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewRemoveUserCommandHandler(uowFactory UserUoWFactory) RemoveUserCommandHandler {
	return RemoveUserCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveUserCommandHandler) Handle(ctx context.Context, cmd RemoveUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.UserID().IsEqual(cmd.CallerID()) {
		return errs.NewForbiddenError("user", cmd.UserID())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	if _, err := userRepo.Get(ctx, cmd.UserID()); err != nil {
		return err
	}

	if err := userRepo.Delete(ctx, cmd.UserID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
