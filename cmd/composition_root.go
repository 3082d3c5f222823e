package cmd

import (
	"log/slog"

	httpadapter "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/auth"
	"shiptrack/internal/adapters/out/postgres"
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	policy     shipment.TransitionPolicy
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		clock:      kernel.SystemClock{},
		policy:     shipment.PolicyFor(config.StrictTransitions),
		logger:     logger,
	}
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryForCommands() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateRemoveUserCommandHandler() commands.RemoveUserCommandHandler {
	return commands.NewRemoveUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateCreateLocationCommandHandler() commands.CreateLocationCommandHandler {
	return commands.NewCreateLocationCommandHandler(c.uowFactoryForCommands())
}

func (c *CompositionRoot) CreateRemoveLocationCommandHandler() commands.RemoveLocationCommandHandler {
	return commands.NewRemoveLocationCommandHandler(c.uowFactoryForCommands())
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.uowFactoryForCommands(), c.clock)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(c.uowFactoryForCommands(), c.clock)
}

func (c *CompositionRoot) CreateRemoveShipmentCommandHandler() commands.RemoveShipmentCommandHandler {
	return commands.NewRemoveShipmentCommandHandler(c.uowFactoryForCommands())
}

func (c *CompositionRoot) CreateMarkShipmentPickedUpCommandHandler() commands.MarkShipmentPickedUpCommandHandler {
	return commands.NewMarkShipmentPickedUpCommandHandler(c.uowFactoryForCommands(), c.clock, c.policy)
}

func (c *CompositionRoot) CreateMarkShipmentDeliveredCommandHandler() commands.MarkShipmentDeliveredCommandHandler {
	return commands.NewMarkShipmentDeliveredCommandHandler(c.uowFactoryForCommands(), c.clock, c.policy)
}

func (c *CompositionRoot) CreateGetUsersQueryHandler() queries.GetUsersQueryHandler {
	return queries.NewGetUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLocationsQueryHandler() queries.GetLocationsQueryHandler {
	return queries.NewGetLocationsQueryHandler(c.gormDB)
}

// Queries read through a unit of work that never begins, so they run on the pool.
func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetShipmentQueryHandler(uow.LocationRepository(), uow.ShipmentRepository(), c.clock)
}

func (c *CompositionRoot) CreateGetShipmentsQueryHandler() queries.GetShipmentsQueryHandler {
	return queries.NewGetShipmentsQueryHandler(c.uowFactory.Create().ShipmentRepository(), c.clock, c.config.StatusScheme)
}

func (c *CompositionRoot) CreateUseCases() httpadapter.UseCases {
	return httpadapter.UseCases{
		CreateUser:            c.CreateCreateUserCommandHandler(),
		RemoveUser:            c.CreateRemoveUserCommandHandler(),
		CreateLocation:        c.CreateCreateLocationCommandHandler(),
		RemoveLocation:        c.CreateRemoveLocationCommandHandler(),
		CreateShipment:        c.CreateCreateShipmentCommandHandler(),
		UpdateShipment:        c.CreateUpdateShipmentCommandHandler(),
		RemoveShipment:        c.CreateRemoveShipmentCommandHandler(),
		MarkShipmentPickedUp:  c.CreateMarkShipmentPickedUpCommandHandler(),
		MarkShipmentDelivered: c.CreateMarkShipmentDeliveredCommandHandler(),
		GetUsers:              c.CreateGetUsersQueryHandler(),
		GetLocations:          c.CreateGetLocationsQueryHandler(),
		GetShipment:           c.CreateGetShipmentQueryHandler(),
		GetShipments:          c.CreateGetShipmentsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateTokenIssuer() (*auth.TokenIssuer, error) {
	return auth.NewTokenIssuer(c.config.JWTSecret, c.config.JWTIssuer, c.config.JWTTTL, c.clock)
}

// CreateRouterConfig wires the HTTP gateway. The impersonation route is only
// mounted when DEV_IMPERSONATION is on.
func (c *CompositionRoot) CreateRouterConfig(registry *prometheus.Registry) (httpadapter.RouterConfig, error) {
	tokens, err := c.CreateTokenIssuer()
	if err != nil {
		return httpadapter.RouterConfig{}, err
	}

	limiterStore, err := httpadapter.NewLimiterStore(c.config.RedisURL)
	if err != nil {
		return httpadapter.RouterConfig{}, err
	}

	metrics := httpadapter.NewMetrics(registry)
	config := httpadapter.RouterConfig{
		Server:       httpadapter.NewServer(c.CreateUseCases(), c.config.StatusScheme, metrics),
		Tokens:       tokens,
		Metrics:      metrics,
		RateLimit:    c.config.RateLimit,
		LimiterStore: limiterStore,
		Logger:       c.logger,
		LogLevel:     c.config.LogLevel,
	}
	if c.config.DevImpersonation {
		config.Dev = httpadapter.NewDevHandler(c.uowFactory.Create().UserRepository(), tokens)
	}
	return config, nil
}

func (c *CompositionRoot) CreateJobManager(registry *prometheus.Registry) *jobs.JobManager {
	census := jobs.NewStatusCensusJob(
		c.uowFactory.Create().ShipmentRepository(),
		c.clock,
		c.config.StatusScheme,
		c.config.StatusCensusSchedule,
		registry,
		c.logger,
	)
	return jobs.NewJobManager(census)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
