package commands_test

import (
	"context"
	"testing"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/user"
	"shiptrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

var fixedClock = kernel.ClockFunc(func() time.Time { return now })

const (
	alice  kernel.ID = 1
	bob    kernel.ID = 2
	home   kernel.ID = 10
	office kernel.ID = 11
	bobs   kernel.ID = 20
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) (kernel.ID, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id kernel.ID) error {
	return m.Called(ctx, id).Error(0)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, l *location.Location) (kernel.ID, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockLocationRepository) Get(ctx context.Context, id kernel.ID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*location.Location), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLocationRepository) ListByOwner(ctx context.Context, ownerID kernel.ID) ([]*location.Location, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*location.Location), args.Error(1)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id kernel.ID) error {
	return m.Called(ctx, id).Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) (kernel.ID, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(kernel.ID), args.Error(1)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*shipment.Shipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShipmentRepository) ListBySender(
	ctx context.Context, senderID kernel.ID, offset int, limit int,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, senderID, offset, limit)
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ListAfter(ctx context.Context, afterID kernel.ID, limit int) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, afterID, limit)
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ExistsForLocation(ctx context.Context, locationID kernel.ID) (bool, error) {
	args := m.Called(ctx, locationID)
	return args.Bool(0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	return m.Called().Get(0).(ports.LocationRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockUserUoW struct{ mock.Mock }

func (m *MockUserUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUserUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUserUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUserUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

// fixture wires a UoW with both repositories; expectations are added per test.
type fixture struct {
	locations *MockLocationRepository
	shipments *MockShipmentRepository
	uow       *MockUoW
	factory   *MockUoWFactory
}

func newFixture() *fixture {
	f := &fixture{
		locations: new(MockLocationRepository),
		shipments: new(MockShipmentRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("LocationRepository").Return(f.locations).Maybe()
	f.uow.On("ShipmentRepository").Return(f.shipments).Maybe()
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.locations.AssertExpectations(t)
	f.shipments.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func newLocation(t *testing.T, id, owner kernel.ID) *location.Location {
	t.Helper()
	addr, err := location.NewAddress("", "", "Madrid", "", "ES", "")
	require.NoError(t, err)
	p, err := kernel.NewGeoPoint(40.4168, -3.7038)
	require.NoError(t, err)
	l, err := location.RestoreLocation(id, owner, "Loc", addr, p, now)
	require.NoError(t, err)
	return l
}

func newShipment(t *testing.T, id, sender kernel.ID, pickupAt, deliveredAt *time.Time) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(shipment.State{
		ID:            id,
		SenderID:      sender,
		OriginID:      home,
		DestinationID: office,
		Size:          shipment.SizeM,
		PickupAt:      pickupAt,
		DeliveredAt:   deliveredAt,
		CreatedAt:     now.Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	return s
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}
