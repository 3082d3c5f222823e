package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/auth"
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/user"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHealth(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestBearerAuth(t *testing.T) {
	tests := map[string]struct {
		header string
	}{
		"missing":      {""},
		"wrong scheme": {"Basic " + aliceToken},
		"unknown":      {"Bearer nope"},
		"empty token":  {"Bearer "},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e := newHarness(t).build()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode[httpadapter.Error](t, rec)
			assert.Equal(t, http.StatusUnauthorized, body.Code)
		})
	}
}

func TestCreateUser(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[commands.CreateUserCommand, *user.User])
	h.useCases.CreateUser = handler

	created, err := user.RestoreUser(3, "carol@example.com", ptr("Carol"), now)
	require.NoError(t, err)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateUserCommand) bool {
		return cmd.Email() == "carol@example.com" && *cmd.Name() == "Carol"
	})).Return(created, nil).Once()

	rec := h.do(http.MethodPost, "/api/v1/users", "", `{"email":"Carol@Example.com","name":"Carol"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[httpadapter.User](t, rec)
	assert.Equal(t, int64(3), body.ID)
	assert.Equal(t, "carol@example.com", body.Email)
	handler.AssertExpectations(t)
}

func TestCreateUser_Errors(t *testing.T) {
	tests := map[string]struct {
		body     string
		mockErr  error
		expected int
	}{
		"invalid email":   {`{"email":"not-an-email"}`, nil, http.StatusBadRequest},
		"missing email":   {`{"name":"x"}`, nil, http.StatusBadRequest},
		"malformed json":  {`{"email":`, nil, http.StatusBadRequest},
		"duplicate email": {`{"email":"alice@example.com"}`, gorm.ErrDuplicatedKey, http.StatusConflict},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			handler := new(queryHandler[commands.CreateUserCommand, *user.User])
			h.useCases.CreateUser = handler
			if tc.mockErr != nil {
				handler.On("Handle", mock.Anything, mock.Anything).Return(nil, tc.mockErr)
			}

			rec := h.do(http.MethodPost, "/api/v1/users", "", tc.body)

			assert.Equal(t, tc.expected, rec.Code, rec.Body.String())
		})
	}
}

func TestGetUsers(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[queries.GetUsersQuery, []queries.GetUsersQueryResponse])
	h.useCases.GetUsers = handler

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetUsersQuery) bool {
		return q.Email() == ""
	})).Return([]queries.GetUsersQueryResponse{
		{ID: alice, Email: "alice@example.com", CreatedAt: now},
		{ID: bob, Email: "bob@example.com", CreatedAt: now},
	}, nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetUsersQuery) bool {
		return q.Email() == "bob@example.com"
	})).Return([]queries.GetUsersQueryResponse{
		{ID: bob, Email: "bob@example.com", CreatedAt: now},
	}, nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetUsersQuery) bool {
		return q.Email() == "nobody@example.com"
	})).Return([]queries.GetUsersQueryResponse{}, nil)

	rec := h.do(http.MethodGet, "/api/v1/users", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]httpadapter.User](t, rec), 2)

	rec = h.do(http.MethodGet, "/api/v1/users?email=BOB@example.com", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(bob), decode[httpadapter.User](t, rec).ID)

	rec = h.do(http.MethodGet, "/api/v1/users?email=nobody@example.com", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveUser(t *testing.T) {
	h := newHarness(t)
	handler := new(commandHandler[commands.RemoveUserCommand])
	h.useCases.RemoveUser = handler

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RemoveUserCommand) bool {
		return cmd.UserID() == alice && cmd.CallerID() == alice
	})).Return(nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RemoveUserCommand) bool {
		return cmd.UserID() == alice && cmd.CallerID() == bob
	})).Return(errs.NewForbiddenError("user", alice))

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/v1/users/1", aliceToken, "").Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/api/v1/users/1", bobToken, "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodDelete, "/api/v1/users/abc", aliceToken, "").Code)
}

func TestCreateLocation(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[commands.CreateLocationCommand, *location.Location])
	h.useCases.CreateLocation = handler

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateLocationCommand) bool {
		return cmd.OwnerID() == alice && cmd.Nickname() == "Home" && cmd.Address().City() == "Madrid"
	})).Return(newLocation(t, 10, alice, "Home", 40.4168, -3.7038), nil)

	rec := h.do(http.MethodPost, "/api/v1/locations", aliceToken,
		`{"nickname":"Home","city":"Madrid","country":"ES","lat":40.4168,"lng":-3.7038}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[httpadapter.Location](t, rec)
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, "Home", body.Nickname)
}

func TestCreateLocation_RejectedByDocument(t *testing.T) {
	tests := map[string]string{
		"latitude out of range": `{"nickname":"Home","city":"Madrid","country":"ES","lat":100,"lng":0}`,
		"missing country":       `{"nickname":"Home","city":"Madrid","lat":1,"lng":0}`,
		"wrong type":            `{"nickname":"Home","city":"Madrid","country":"ES","lat":"north","lng":0}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.useCases.CreateLocation = new(queryHandler[commands.CreateLocationCommand, *location.Location])

			rec := h.do(http.MethodPost, "/api/v1/locations", aliceToken, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestGetLocations(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[queries.GetLocationsQuery, []queries.GetLocationsQueryResponse])
	h.useCases.GetLocations = handler

	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetLocationsQuery) bool {
		return q.OwnerID() == alice
	})).Return([]queries.GetLocationsQueryResponse{
		{ID: 10, Nickname: "Home", City: "Madrid", Country: "ES", Lat: 40.4, Lng: -3.7, CreatedAt: now},
	}, nil)

	rec := h.do(http.MethodGet, "/api/v1/locations", aliceToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[[]httpadapter.Location](t, rec)
	require.Len(t, body, 1)
	assert.Equal(t, "Home", body[0].Nickname)
}

func TestRemoveLocation_InUse(t *testing.T) {
	h := newHarness(t)
	handler := new(commandHandler[commands.RemoveLocationCommand])
	h.useCases.RemoveLocation = handler
	handler.On("Handle", mock.Anything, mock.Anything).Return(location.ErrLocationIsInUse)

	rec := h.do(http.MethodDelete, "/api/v1/locations/10", aliceToken, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetShipments_ClampsPaging(t *testing.T) {
	tests := map[string]struct {
		query         string
		page, perPage int
	}{
		"defaults":          {"", 1, 20},
		"zero page":         {"?page=0&perPage=10", 1, 10},
		"negative page":     {"?page=-3", 1, 20},
		"perPage too large": {"?page=2&perPage=500", 2, 100},
		"perPage zero":      {"?perPage=0", 1, 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			handler := new(queryHandler[queries.GetShipmentsQuery, queries.GetShipmentsQueryResponse])
			h.useCases.GetShipments = handler
			handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShipmentsQuery) bool {
				return q.UserID() == alice && q.Page() == tc.page && q.PerPage() == tc.perPage && q.Status() == nil
			})).Return(queries.GetShipmentsQueryResponse{
				Items: []shipment.Snapshot{}, Page: tc.page, PerPage: tc.perPage, DerivedAt: now,
			}, nil).Once()

			rec := h.do(http.MethodGet, "/api/v1/shipments"+tc.query, aliceToken, "")

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			body := decode[httpadapter.ShipmentPage](t, rec)
			assert.Equal(t, tc.page, body.Page)
			assert.Equal(t, tc.perPage, body.PerPage)
			assert.NotNil(t, body.Items)
			handler.AssertExpectations(t)
		})
	}
}

func TestGetShipments_StatusFilter(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[queries.GetShipmentsQuery, queries.GetShipmentsQueryResponse])
	h.useCases.GetShipments = handler

	inTransit := newShipment(t, 100, at(-time.Hour), nil, nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShipmentsQuery) bool {
		return q.Status() != nil && *q.Status() == shipment.InTransit
	})).Return(queries.GetShipmentsQueryResponse{
		Items: []shipment.Snapshot{inTransit.Snapshot(now)}, Page: 1, PerPage: 20, DerivedAt: now,
	}, nil)

	rec := h.do(http.MethodGet, "/api/v1/shipments?status=in_transit", aliceToken, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[httpadapter.ShipmentPage](t, rec)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "In Transit", body.Items[0].Status)
	assert.True(t, now.Equal(body.Items[0].DerivedAt))

	rec = h.do(http.MethodGet, "/api/v1/shipments?status=lost", aliceToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/shipments?page=first", aliceToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/shipments?page=184467440737095516&perPage=100", aliceToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetShipment(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[queries.GetShipmentQuery, shipment.Snapshot])
	h.useCases.GetShipment = handler

	delivered := newShipment(t, 100, at(-48*time.Hour), at(-24*time.Hour), at(-30*time.Hour))
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShipmentQuery) bool {
		return q.ShipmentID() == 100 && q.UserID() == alice
	})).Return(delivered.Snapshot(now), nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShipmentQuery) bool {
		return q.UserID() == bob
	})).Return(shipment.Snapshot{}, errs.NewForbiddenError("shipment", kernel.ID(100)))
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShipmentQuery) bool {
		return q.ShipmentID() == 404
	})).Return(shipment.Snapshot{}, errs.NewObjectNotFoundError("shipment", kernel.ID(404)))

	rec := h.do(http.MethodGet, "/api/v1/shipments/100", aliceToken, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[httpadapter.Shipment](t, rec)
	assert.Equal(t, "Delivered", body.Status)
	require.NotNil(t, body.DeliveredLate)
	assert.False(t, *body.DeliveredLate)
	require.NotNil(t, body.Origin)
	assert.Equal(t, "Home", body.Origin.Nickname)
	require.NotNil(t, body.DistanceKm)
	assert.InDelta(t, 505, *body.DistanceKm, 5)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/v1/shipments/100", bobToken, "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/shipments/404", aliceToken, "").Code)
}

func TestGetShipment_LegacyScheme(t *testing.T) {
	h := newHarness(t)
	h.scheme = shipment.Legacy
	handler := new(queryHandler[queries.GetShipmentQuery, shipment.Snapshot])
	h.useCases.GetShipment = handler

	late := newShipment(t, 100, at(-48*time.Hour), at(-30*time.Hour), at(-24*time.Hour))
	handler.On("Handle", mock.Anything, mock.Anything).Return(late.Snapshot(now), nil)

	rec := h.do(http.MethodGet, "/api/v1/shipments/100", aliceToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delayed", decode[httpadapter.Shipment](t, rec).Status)
}

func TestCreateShipment(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[commands.CreateShipmentCommand, shipment.Snapshot])
	h.useCases.CreateShipment = handler

	created := newShipment(t, 100, nil, nil, nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateShipmentCommand) bool {
		return cmd.SenderID() == alice &&
			cmd.OriginID() == 10 &&
			cmd.DestinationID() == 11 &&
			cmd.Size() == shipment.SizeXL &&
			cmd.ExpectedDeliveryAt() != nil
	})).Return(created.Snapshot(now), nil)

	rec := h.do(http.MethodPost, "/api/v1/shipments", aliceToken,
		`{"originLocationId":10,"destinationLocationId":11,"size":"XL","expectedDeliveryAt":"2025-06-03T18:00:00Z"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[httpadapter.Shipment](t, rec)
	assert.Equal(t, int64(100), body.ID)
	assert.Equal(t, "In Transit", body.Status)
	assert.Nil(t, body.DeliveredLate)
}

func TestCreateShipment_Errors(t *testing.T) {
	tests := map[string]struct {
		body     string
		mockErr  error
		expected int
	}{
		"same origin and destination": {`{"originLocationId":10,"destinationLocationId":10,"size":"S"}`, nil, http.StatusBadRequest},
		"unknown size":                {`{"originLocationId":10,"destinationLocationId":11,"size":"XXL"}`, nil, http.StatusBadRequest},
		"missing origin":              {`{"destinationLocationId":11,"size":"S"}`, nil, http.StatusBadRequest},
		"foreign origin": {
			`{"originLocationId":10,"destinationLocationId":11,"size":"S"}`,
			errs.NewForbiddenError("originLocationId", kernel.ID(10)),
			http.StatusForbidden,
		},
		"unknown destination": {
			`{"originLocationId":10,"destinationLocationId":99,"size":"S"}`,
			errs.NewObjectNotFoundError("location", kernel.ID(99)),
			http.StatusNotFound,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			handler := new(queryHandler[commands.CreateShipmentCommand, shipment.Snapshot])
			h.useCases.CreateShipment = handler
			if tc.mockErr != nil {
				handler.On("Handle", mock.Anything, mock.Anything).Return(shipment.Snapshot{}, tc.mockErr)
			}

			rec := h.do(http.MethodPost, "/api/v1/shipments", aliceToken, tc.body)

			assert.Equal(t, tc.expected, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateShipment_ExpectedDeliveryAtTriState(t *testing.T) {
	tests := map[string]struct {
		body  string
		check func(p commands.ShipmentPatch) bool
	}{
		"absent leaves eta untouched": {
			`{"size":"L"}`,
			func(p commands.ShipmentPatch) bool {
				return p.ExpectedDeliveryAt == nil && !p.ClearExpectedDeliveryAt && *p.Size == shipment.SizeL
			},
		},
		"null clears eta": {
			`{"expectedDeliveryAt":null}`,
			func(p commands.ShipmentPatch) bool {
				return p.ExpectedDeliveryAt == nil && p.ClearExpectedDeliveryAt
			},
		},
		"value sets eta": {
			`{"expectedDeliveryAt":"2025-06-05T10:00:00Z","destinationLocationId":12}`,
			func(p commands.ShipmentPatch) bool {
				return p.ExpectedDeliveryAt != nil &&
					p.ExpectedDeliveryAt.Equal(time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)) &&
					*p.DestinationID == 12
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			handler := new(queryHandler[commands.UpdateShipmentCommand, shipment.Snapshot])
			h.useCases.UpdateShipment = handler
			handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateShipmentCommand) bool {
				return cmd.ShipmentID() == 100 && cmd.UserID() == alice && tc.check(cmd.Patch())
			})).Return(newShipment(t, 100, nil, nil, nil).Snapshot(now), nil).Once()

			rec := h.do(http.MethodPatch, "/api/v1/shipments/100", aliceToken, tc.body)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			handler.AssertExpectations(t)
		})
	}
}

func TestUpdateShipment_InvalidBody(t *testing.T) {
	tests := map[string]string{
		"zero destination": `{"destinationLocationId":0}`,
		"unknown size":     `{"size":"XS"}`,
		"malformed eta":    `{"expectedDeliveryAt":"tomorrow"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.useCases.UpdateShipment = new(queryHandler[commands.UpdateShipmentCommand, shipment.Snapshot])

			rec := h.do(http.MethodPatch, "/api/v1/shipments/100", aliceToken, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRemoveShipment(t *testing.T) {
	h := newHarness(t)
	handler := new(commandHandler[commands.RemoveShipmentCommand])
	h.useCases.RemoveShipment = handler
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RemoveShipmentCommand) bool {
		return cmd.ShipmentID() == 100
	})).Return(nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RemoveShipmentCommand) bool {
		return cmd.ShipmentID() == 101
	})).Return(shipment.ErrShipmentIsPickedUp)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/v1/shipments/100", aliceToken, "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodDelete, "/api/v1/shipments/101", aliceToken, "").Code)
}

func TestMarkShipmentPickedUp(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[commands.MarkShipmentPickedUpCommand, shipment.Snapshot])
	h.useCases.MarkShipmentPickedUp = handler

	picked := newShipment(t, 100, &now, nil, nil)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkShipmentPickedUpCommand) bool {
		return cmd.ShipmentID() == 100 && cmd.At() == nil
	})).Return(picked.Snapshot(now), nil).Once()
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkShipmentPickedUpCommand) bool {
		return cmd.ShipmentID() == 100 && cmd.At() != nil && cmd.At().Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	})).Return(picked.Snapshot(now), nil).Once()

	rec := h.do(http.MethodPost, "/api/v1/shipments/100/pickup", aliceToken, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(http.MethodPost, "/api/v1/shipments/100/pickup", aliceToken, `{"at":"2025-06-01T09:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	handler.AssertExpectations(t)
}

func TestMarkShipmentDelivered_StrictViolation(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[commands.MarkShipmentDeliveredCommand, shipment.Snapshot])
	h.useCases.MarkShipmentDelivered = handler
	handler.On("Handle", mock.Anything, mock.Anything).Return(shipment.Snapshot{}, shipment.ErrShipmentIsNotPickedUp)

	rec := h.do(http.MethodPost, "/api/v1/shipments/100/deliver", aliceToken, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[httpadapter.Error](t, rec).Message, "picked up")
}

func TestMetrics_CountsLifecycleEvents(t *testing.T) {
	h := newHarness(t)
	handler := new(queryHandler[commands.MarkShipmentDeliveredCommand, shipment.Snapshot])
	h.useCases.MarkShipmentDelivered = handler
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(newShipment(t, 100, at(-time.Hour), nil, &now).Snapshot(now), nil)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/v1/shipments/100/deliver", aliceToken, "").Code)

	rec := h.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shiptrack_shipment_events_total{event="delivered"} 1`)
	assert.Contains(t, rec.Body.String(), `shiptrack_http_request_duration_seconds_count{method="POST",path="/api/v1/shipments/:id/deliver",status="200"} 1`)
}

func TestRateLimit(t *testing.T) {
	h := newHarness(t)
	h.rate = "2-M"
	handler := new(queryHandler[queries.GetLocationsQuery, []queries.GetLocationsQueryResponse])
	h.useCases.GetLocations = handler
	handler.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetLocationsQueryResponse{}, nil)

	first := h.do(http.MethodGet, "/api/v1/locations", aliceToken, "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/v1/locations", aliceToken, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, h.do(http.MethodGet, "/api/v1/locations", aliceToken, "").Code)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/health", "", "").Code, "Health is never limited")
}

func TestDevImpersonation(t *testing.T) {
	t.Run("not mounted by default", func(t *testing.T) {
		rec := newHarness(t).do(http.MethodGet, "/dev/impersonate/1", "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("issues a token for an existing user", func(t *testing.T) {
		users := new(MockUserGetter)
		tokens := new(MockTokenIssuer)
		h := newHarness(t)
		h.dev = httpadapter.NewDevHandler(users, tokens)

		u, err := user.RestoreUser(alice, "alice@example.com", nil, now)
		require.NoError(t, err)
		users.On("Get", mock.Anything, alice).Return(u, nil)
		users.On("Get", mock.Anything, kernel.ID(99)).Return(nil, errs.NewObjectNotFoundError("user", kernel.ID(99)))
		expiresAt := now.Add(720 * time.Hour)
		tokens.On("Issue", alice, "alice@example.com").Return(auth.Token{Value: "signed", ExpiresAt: expiresAt}, nil)

		rec := h.do(http.MethodGet, "/dev/impersonate/1", "", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[httpadapter.ImpersonationToken](t, rec)
		assert.Equal(t, "signed", body.Token)
		assert.Equal(t, "alice@example.com", body.Email)
		assert.Equal(t, int64(alice), body.UserID)
		assert.Equal(t, expiresAt.Unix(), body.Exp)

		assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/dev/impersonate/99", "", "").Code)
		assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/dev/impersonate/abc", "", "").Code)
	})
}

func TestSwaggerDocument(t *testing.T) {
	rec := newHarness(t).do(http.MethodGet, "/swagger/doc.json", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi":"3.0.3"`)
	assert.Contains(t, rec.Body.String(), "/api/v1/shipments/{id}/pickup")
}
