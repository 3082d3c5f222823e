// Package http is the echo gateway: it authenticates callers, validates and
// coerces input, and turns use-case results into JSON.
package http

import (
	"context"
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/user"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	CreateUserHandler interface {
		Handle(ctx context.Context, cmd commands.CreateUserCommand) (*user.User, error)
	}
	RemoveUserHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveUserCommand) error
	}
	GetUsersHandler interface {
		Handle(ctx context.Context, query queries.GetUsersQuery) ([]queries.GetUsersQueryResponse, error)
	}
	CreateLocationHandler interface {
		Handle(ctx context.Context, cmd commands.CreateLocationCommand) (*location.Location, error)
	}
	RemoveLocationHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveLocationCommand) error
	}
	GetLocationsHandler interface {
		Handle(ctx context.Context, query queries.GetLocationsQuery) ([]queries.GetLocationsQueryResponse, error)
	}
	CreateShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (shipment.Snapshot, error)
	}
	UpdateShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateShipmentCommand) (shipment.Snapshot, error)
	}
	RemoveShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveShipmentCommand) error
	}
	MarkShipmentPickedUpHandler interface {
		Handle(ctx context.Context, cmd commands.MarkShipmentPickedUpCommand) (shipment.Snapshot, error)
	}
	MarkShipmentDeliveredHandler interface {
		Handle(ctx context.Context, cmd commands.MarkShipmentDeliveredCommand) (shipment.Snapshot, error)
	}
	GetShipmentHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentQuery) (shipment.Snapshot, error)
	}
	GetShipmentsHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentsQuery) (queries.GetShipmentsQueryResponse, error)
	}
)

// UseCases groups the command and query handlers the server dispatches to.
type UseCases struct {
	// Command handlers
	CreateUser            CreateUserHandler
	RemoveUser            RemoveUserHandler
	CreateLocation        CreateLocationHandler
	RemoveLocation        RemoveLocationHandler
	CreateShipment        CreateShipmentHandler
	UpdateShipment        UpdateShipmentHandler
	RemoveShipment        RemoveShipmentHandler
	MarkShipmentPickedUp  MarkShipmentPickedUpHandler
	MarkShipmentDelivered MarkShipmentDeliveredHandler

	// Query handlers
	GetUsers     GetUsersHandler
	GetLocations GetLocationsHandler
	GetShipment  GetShipmentHandler
	GetShipments GetShipmentsHandler
}

// Server implements ServerInterface on top of the use cases.
type Server struct {
	useCases UseCases
	scheme   shipment.Scheme
	metrics  *Metrics
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a server. scheme selects how statuses are rendered.
func NewServer(useCases UseCases, scheme shipment.Scheme, metrics *Metrics) *Server {
	return &Server{
		useCases: useCases,
		scheme:   scheme,
		metrics:  metrics,
	}
}

// GetUsers handles GET /api/v1/users. With ?email= it returns the single matching
// user or 404.
func (s *Server) GetUsers(ctx echo.Context, params GetUsersParams) error {
	email := ""
	if params.Email != nil {
		email = *params.Email
	}

	query := queries.NewGetUsersQuery(email)
	users, err := s.useCases.GetUsers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	if query.Email() != "" {
		if len(users) == 0 {
			return errs.NewObjectNotFoundError("user", query.Email())
		}
		return ctx.JSON(http.StatusOK, toUserFromReadModel(users[0]))
	}

	response := make([]User, len(users))
	for i, u := range users {
		response[i] = toUserFromReadModel(u)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(ctx echo.Context) error {
	var body NewUser
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateUserCommand(body.Email, body.Name)
	if err != nil {
		return err
	}

	created, err := s.useCases.CreateUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toUser(created))
}

// RemoveUser handles DELETE /api/v1/users/{id}.
func (s *Server) RemoveUser(ctx echo.Context, id int64) error {
	callerID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveUserCommand(kernel.ID(id), callerID)
	if err != nil {
		return err
	}

	if err := s.useCases.RemoveUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLocations handles GET /api/v1/locations.
func (s *Server) GetLocations(ctx echo.Context) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetLocationsQuery(userID)
	if err != nil {
		return err
	}

	locations, err := s.useCases.GetLocations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Location, len(locations))
	for i, l := range locations {
		response[i] = toLocationFromReadModel(l)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateLocation handles POST /api/v1/locations.
func (s *Server) CreateLocation(ctx echo.Context) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var body NewLocation
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateLocationCommand(
		userID,
		body.Nickname,
		commands.AddressInput{
			Line1:      body.Address1,
			Line2:      body.Address2,
			City:       body.City,
			State:      body.State,
			Country:    body.Country,
			PostalCode: body.PostalCode,
		},
		*body.Lat,
		*body.Lng,
	)
	if err != nil {
		return err
	}

	created, err := s.useCases.CreateLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toLocation(created))
}

// RemoveLocation handles DELETE /api/v1/locations/{id}.
func (s *Server) RemoveLocation(ctx echo.Context, id int64) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveLocationCommand(kernel.ID(id), userID)
	if err != nil {
		return err
	}

	if err := s.useCases.RemoveLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipments handles GET /api/v1/shipments. Out-of-range paging is clamped
// rather than rejected; an unknown status label is a 400.
func (s *Server) GetShipments(ctx echo.Context, params GetShipmentsParams) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var status *shipment.Status
	if params.Status != nil && *params.Status != "" {
		parsed, err := shipment.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	page, perPage := clampPaging(params.Page, params.PerPage)
	query, err := queries.NewGetShipmentsQuery(userID, status, page, perPage)
	if err != nil {
		return err
	}

	result, err := s.useCases.GetShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	items := make([]Shipment, len(result.Items))
	for i, snap := range result.Items {
		items[i] = toShipment(snap, s.scheme)
	}

	return ctx.JSON(http.StatusOK, ShipmentPage{
		Items:     items,
		Page:      result.Page,
		PerPage:   result.PerPage,
		DerivedAt: result.DerivedAt,
	})
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var body NewShipment
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	size, err := shipment.ParseSize(body.Size)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateShipmentCommand(
		userID,
		kernel.ID(body.OriginLocationID),
		kernel.ID(body.DestinationLocationID),
		size,
		body.PickupAt,
		body.ExpectedDeliveryAt,
		body.Notes,
	)
	if err != nil {
		return err
	}

	snap, err := s.useCases.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.metrics.RecordShipmentEvent(EventCreated)
	return ctx.JSON(http.StatusCreated, toShipment(snap, s.scheme))
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context, id int64) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetShipmentQuery(kernel.ID(id), userID)
	if err != nil {
		return err
	}

	snap, err := s.useCases.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toShipment(snap, s.scheme))
}

// UpdateShipment handles PATCH /api/v1/shipments/{id}.
func (s *Server) UpdateShipment(ctx echo.Context, id int64) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var body ShipmentPatch
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	patch := commands.ShipmentPatch{}
	if body.DestinationLocationID != nil {
		destinationID := kernel.ID(*body.DestinationLocationID)
		patch.DestinationID = &destinationID
	}
	if body.Size != nil {
		size, err := shipment.ParseSize(*body.Size)
		if err != nil {
			return err
		}
		patch.Size = &size
	}
	if body.ExpectedDeliveryAt.Set {
		if body.ExpectedDeliveryAt.Value == nil {
			patch.ClearExpectedDeliveryAt = true
		} else {
			patch.ExpectedDeliveryAt = body.ExpectedDeliveryAt.Value
		}
	}

	cmd, err := commands.NewUpdateShipmentCommand(kernel.ID(id), userID, patch)
	if err != nil {
		return err
	}

	snap, err := s.useCases.UpdateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.metrics.RecordShipmentEvent(EventUpdated)
	return ctx.JSON(http.StatusOK, toShipment(snap, s.scheme))
}

// RemoveShipment handles DELETE /api/v1/shipments/{id}.
func (s *Server) RemoveShipment(ctx echo.Context, id int64) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveShipmentCommand(kernel.ID(id), userID)
	if err != nil {
		return err
	}

	if err := s.useCases.RemoveShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	s.metrics.RecordShipmentEvent(EventRemoved)
	return ctx.NoContent(http.StatusNoContent)
}

// MarkShipmentPickedUp handles POST /api/v1/shipments/{id}/pickup.
func (s *Server) MarkShipmentPickedUp(ctx echo.Context, id int64) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var body Transition
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewMarkShipmentPickedUpCommand(kernel.ID(id), userID, body.At)
	if err != nil {
		return err
	}

	snap, err := s.useCases.MarkShipmentPickedUp.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.metrics.RecordShipmentEvent(EventPickedUp)
	return ctx.JSON(http.StatusOK, toShipment(snap, s.scheme))
}

// MarkShipmentDelivered handles POST /api/v1/shipments/{id}/deliver.
func (s *Server) MarkShipmentDelivered(ctx echo.Context, id int64) error {
	userID, err := CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var body Transition
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewMarkShipmentDeliveredCommand(kernel.ID(id), userID, body.At)
	if err != nil {
		return err
	}

	snap, err := s.useCases.MarkShipmentDelivered.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.metrics.RecordShipmentEvent(EventDelivered)
	return ctx.JSON(http.StatusOK, toShipment(snap, s.scheme))
}

func bindAndValidate(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return err
	}
	return ctx.Validate(body)
}

// clampPaging applies defaults and pulls page and perPage into their valid ranges.
func clampPaging(page, perPage *int) (int, int) {
	p, pp := queries.DefaultPage, queries.DefaultPerPage
	if perPage != nil {
		pp = min(max(*perPage, 1), queries.MaxPerPage)
	}
	if page != nil {
		p = min(max(*page, 1), queries.MaxPageFor(pp))
	}
	return p, pp
}
