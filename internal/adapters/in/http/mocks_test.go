package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/auth"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const (
	alice kernel.ID = 1
	bob   kernel.ID = 2

	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

// queryHandler mocks any use case returning a value and an error.
type queryHandler[In any, Out any] struct {
	mock.Mock
}

func (m *queryHandler[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	args := m.Called(ctx, in)
	var out Out
	if v := args.Get(0); v != nil {
		out = v.(Out)
	}
	return out, args.Error(1)
}

// commandHandler mocks a use case returning only an error.
type commandHandler[In any] struct {
	mock.Mock
}

func (m *commandHandler[In]) Handle(ctx context.Context, in In) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

type staticTokens map[string]kernel.ID

func (s staticTokens) Validate(token string) (kernel.ID, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, auth.ErrInvalidToken
}

type MockUserGetter struct {
	mock.Mock
}

func (m *MockUserGetter) Get(ctx context.Context, id kernel.ID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID kernel.ID, email string) (auth.Token, error) {
	args := m.Called(userID, email)
	return args.Get(0).(auth.Token), args.Error(1)
}

// harness is a router wired to mocked use cases.
type harness struct {
	t        *testing.T
	useCases httpadapter.UseCases
	scheme   shipment.Scheme
	rate     string
	dev      *httpadapter.DevHandler
	registry *prometheus.Registry
	echo     *echo.Echo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{t: t, scheme: shipment.Canonical, registry: prometheus.NewRegistry()}
}

func (h *harness) build() *echo.Echo {
	h.t.Helper()
	metrics := httpadapter.NewMetrics(h.registry)
	e, err := httpadapter.NewRouter(context.Background(), httpadapter.RouterConfig{
		Server:    httpadapter.NewServer(h.useCases, h.scheme, metrics),
		Tokens:    staticTokens{aliceToken: alice, bobToken: bob},
		Metrics:   metrics,
		Dev:       h.dev,
		RateLimit: h.rate,
		LogLevel:  "off",
	})
	require.NoError(h.t, err)
	h.echo = e
	return e
}

func (h *harness) do(method, target, token, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	if h.echo == nil {
		h.build()
	}

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func ptr[T any](v T) *T {
	return &v
}

func newLocation(t *testing.T, id, owner kernel.ID, nickname string, lat, lng float64) *location.Location {
	t.Helper()
	addr, err := location.NewAddress("", "", "Madrid", "", "ES", "")
	require.NoError(t, err)
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	l, err := location.RestoreLocation(id, owner, nickname, addr, p, now.Add(-48*time.Hour))
	require.NoError(t, err)
	return l
}

func newShipment(t *testing.T, id kernel.ID, pickupAt, eta, deliveredAt *time.Time) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(shipment.State{
		ID:                 id,
		SenderID:           alice,
		OriginID:           10,
		DestinationID:      11,
		Size:               shipment.SizeM,
		PickupAt:           pickupAt,
		ExpectedDeliveryAt: eta,
		DeliveredAt:        deliveredAt,
		CreatedAt:          now.Add(-24 * time.Hour),
		Origin:             newLocation(t, 10, alice, "Home", 40.4168, -3.7038),
		Destination:        newLocation(t, 11, alice, "Office", 41.3874, 2.1686),
	})
	require.NoError(t, err)
	return s
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}
