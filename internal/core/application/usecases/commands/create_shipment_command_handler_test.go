package commands_test

import (
	"errors"
	"testing"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T, sender kernel.ID) commands.CreateShipmentCommand {
	t.Helper()
	cmd, err := commands.NewCreateShipmentCommand(sender, home, office, shipment.SizeM, nil, at(12*time.Hour), nil)
	require.NoError(t, err)
	return cmd
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	created := newShipment(t, 100, alice, nil, nil)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.locations.On("Get", mock.Anything, home).Return(newLocation(t, home, alice), nil).Once(),
		f.locations.On("Get", mock.Anything, office).Return(newLocation(t, office, bob), nil).Once(),
		f.shipments.On("Add", mock.Anything, mock.MatchedBy(func(s *shipment.Shipment) bool {
			return s.IsSentBy(alice) && s.OriginID() == home && s.DestinationID() == office &&
				s.PickupAt() == nil && s.DeliveredAt() == nil
		})).Return(kernel.ID(100), nil).Once(),
		f.shipments.On("Get", mock.Anything, kernel.ID(100)).Return(created, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateShipmentCommandHandler(f.factory, fixedClock)
	snap, err := h.Handle(ctx, newCreateCommand(t, alice))

	require.NoError(t, err)
	assert.Same(t, created, snap.Shipment)
	assert.Equal(t, now, snap.DerivedAt)
	assert.Equal(t, shipment.OnTime, snap.Status)
	f.assertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_OriginOwnedBySomeoneElse(t *testing.T) {
	ctx := t.Context()
	f := newFixture()

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.locations.On("Get", mock.Anything, home).Return(newLocation(t, home, alice), nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateShipmentCommandHandler(f.factory, fixedClock)
	_, err := h.Handle(ctx, newCreateCommand(t, bob))

	require.ErrorIs(t, err, errs.ErrForbidden)
	f.shipments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_MissingLocations(t *testing.T) {
	t.Run("origin", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.locations.On("Get", mock.Anything, home).Return(nil, errs.NewObjectNotFoundError("location", home)).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		_, err := commands.NewCreateShipmentCommandHandler(f.factory, fixedClock).Handle(ctx, newCreateCommand(t, alice))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.assertExpectations(t)
	})

	t.Run("destination", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.locations.On("Get", mock.Anything, home).Return(newLocation(t, home, alice), nil).Once()
		f.locations.On("Get", mock.Anything, office).Return(nil, errs.NewObjectNotFoundError("location", office)).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()

		_, err := commands.NewCreateShipmentCommandHandler(f.factory, fixedClock).Handle(ctx, newCreateCommand(t, alice))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.assertExpectations(t)
	})
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)

	_, err := commands.NewCreateShipmentCommandHandler(factory, fixedClock).
		Handle(t.Context(), commands.CreateShipmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	_, err := commands.NewCreateShipmentCommandHandler(f.factory, fixedClock).Handle(ctx, newCreateCommand(t, alice))

	require.EqualError(t, err, "begin error")
	f.assertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newFixture()

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.locations.On("Get", mock.Anything, home).Return(newLocation(t, home, alice), nil).Once()
	f.locations.On("Get", mock.Anything, office).Return(newLocation(t, office, alice), nil).Once()
	f.shipments.On("Add", mock.Anything, mock.Anything).Return(kernel.ID(7), nil).Once()
	f.shipments.On("Get", mock.Anything, kernel.ID(7)).Return(newShipment(t, 7, alice, nil, nil), nil).Once()
	f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err := commands.NewCreateShipmentCommandHandler(f.factory, fixedClock).Handle(ctx, newCreateCommand(t, alice))

	require.EqualError(t, err, "commit error")
	f.assertExpectations(t)
}
