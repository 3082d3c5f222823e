package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/location"
)

// CreateLocationCommandHandler stores a new location for its owner.
type CreateLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateLocationCommandHandler(uowFactory UoWFactory) CreateLocationCommandHandler {
	return CreateLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateLocationCommandHandler) Handle(ctx context.Context, cmd CreateLocationCommand) (*location.Location, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l, err := location.NewLocation(cmd.OwnerID(), cmd.Nickname(), cmd.Address(), cmd.Point())
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

	locationRepo := uow.LocationRepository()

	id, err := locationRepo.Add(ctx, l)
	if err != nil {
		return nil, err
	}

	created, err := locationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
