package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetShipmentsParams defines parameters for GetShipments.
type GetShipmentsParams struct {
	Page    *int    `form:"page,omitempty" json:"page,omitempty"`
	PerPage *int    `form:"perPage,omitempty" json:"perPage,omitempty"`
	Status  *string `form:"status,omitempty" json:"status,omitempty"`
}

// GetUsersParams defines parameters for GetUsers.
type GetUsersParams struct {
	Email *string `form:"email,omitempty" json:"email,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml, one method per operationId.
type ServerInterface interface {
	// (GET /api/v1/users)
	GetUsers(ctx echo.Context, params GetUsersParams) error
	// (POST /api/v1/users)
	CreateUser(ctx echo.Context) error
	// (DELETE /api/v1/users/{id})
	RemoveUser(ctx echo.Context, id int64) error
	// (GET /api/v1/locations)
	GetLocations(ctx echo.Context) error
	// (POST /api/v1/locations)
	CreateLocation(ctx echo.Context) error
	// (DELETE /api/v1/locations/{id})
	RemoveLocation(ctx echo.Context, id int64) error
	// (GET /api/v1/shipments)
	GetShipments(ctx echo.Context, params GetShipmentsParams) error
	// (POST /api/v1/shipments)
	CreateShipment(ctx echo.Context) error
	// (GET /api/v1/shipments/{id})
	GetShipment(ctx echo.Context, id int64) error
	// (PATCH /api/v1/shipments/{id})
	UpdateShipment(ctx echo.Context, id int64) error
	// (DELETE /api/v1/shipments/{id})
	RemoveShipment(ctx echo.Context, id int64) error
	// (POST /api/v1/shipments/{id}/pickup)
	MarkShipmentPickedUp(ctx echo.Context, id int64) error
	// (POST /api/v1/shipments/{id}/deliver)
	MarkShipmentDelivered(ctx echo.Context, id int64) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetUsers(ctx echo.Context) error {
	var params GetUsersParams

	if err := runtime.BindQueryParameter("form", true, false, "email", ctx.QueryParams(), &params.Email); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter email: %s", err))
	}

	return w.Handler.GetUsers(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateUser(ctx echo.Context) error {
	return w.Handler.CreateUser(ctx)
}

func (w *ServerInterfaceWrapper) RemoveUser(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RemoveUser(ctx, id)
}

func (w *ServerInterfaceWrapper) GetLocations(ctx echo.Context) error {
	return w.Handler.GetLocations(ctx)
}

func (w *ServerInterfaceWrapper) CreateLocation(ctx echo.Context) error {
	return w.Handler.CreateLocation(ctx)
}

func (w *ServerInterfaceWrapper) RemoveLocation(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RemoveLocation(ctx, id)
}

func (w *ServerInterfaceWrapper) GetShipments(ctx echo.Context) error {
	var params GetShipmentsParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "perPage", ctx.QueryParams(), &params.PerPage); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter perPage: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.GetShipments(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	return w.Handler.CreateShipment(ctx)
}

func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateShipment(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) RemoveShipment(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RemoveShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) MarkShipmentPickedUp(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkShipmentPickedUp(ctx, id)
}

func (w *ServerInterfaceWrapper) MarkShipmentDelivered(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkShipmentDelivered(ctx, id)
}

func bindID(ctx echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the part of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of ServerInterface to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET("/api/v1/users", w.GetUsers)
	router.POST("/api/v1/users", w.CreateUser)
	router.DELETE("/api/v1/users/:id", w.RemoveUser)
	router.GET("/api/v1/locations", w.GetLocations)
	router.POST("/api/v1/locations", w.CreateLocation)
	router.DELETE("/api/v1/locations/:id", w.RemoveLocation)
	router.GET("/api/v1/shipments", w.GetShipments)
	router.POST("/api/v1/shipments", w.CreateShipment)
	router.GET("/api/v1/shipments/:id", w.GetShipment)
	router.PATCH("/api/v1/shipments/:id", w.UpdateShipment)
	router.DELETE("/api/v1/shipments/:id", w.RemoveShipment)
	router.POST("/api/v1/shipments/:id/pickup", w.MarkShipmentPickedUp)
	router.POST("/api/v1/shipments/:id/deliver", w.MarkShipmentDelivered)
}
