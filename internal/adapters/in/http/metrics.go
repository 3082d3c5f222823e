package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Shipment lifecycle events counted by Metrics.
const (
	EventCreated   = "created"
	EventUpdated   = "updated"
	EventPickedUp  = "picked_up"
	EventDelivered = "delivered"
	EventRemoved   = "removed"
)

// Metrics holds the HTTP collectors. They are registered on the registerer passed
// to NewMetrics so tests can use a private registry.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	shipmentEvents  *prometheus.CounterVec
	gatherer        prometheus.Gatherer
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shiptrack_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		shipmentEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiptrack_shipment_events_total",
				Help: "Shipment lifecycle operations that succeeded, by event",
			},
			[]string{"event"},
		),
		gatherer: registry,
	}
}

// Middleware records the duration of every request under its route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				code, _ := statusFor(err)
				status = code
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			m.requestDuration.
				WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RecordShipmentEvent counts one successful lifecycle operation.
func (m *Metrics) RecordShipmentEvent(event string) {
	m.shipmentEvents.WithLabelValues(event).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
