package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

// CensusPageSize is the number of shipments read per round trip.
const CensusPageSize = 500

// ShipmentCensusSource pages through every shipment in ascending id order.
type ShipmentCensusSource interface {
	ListAfter(ctx context.Context, afterID kernel.ID, limit int) ([]*shipment.Shipment, error)
}

// StatusCensusJob periodically derives the status of every shipment and publishes
// the totals as the shiptrack_shipments_by_status gauge. It only reads.
type StatusCensusJob struct {
	source   ShipmentCensusSource
	clock    kernel.Clock
	scheme   shipment.Scheme
	schedule string
	gauge    *prometheus.GaugeVec
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusCensusJob creates the census job. The gauge is registered on registerer.
func NewStatusCensusJob(
	source ShipmentCensusSource,
	clock kernel.Clock,
	scheme shipment.Scheme,
	schedule string,
	registerer prometheus.Registerer,
	logger *slog.Logger,
) *StatusCensusJob {
	return &StatusCensusJob{
		source:   source,
		clock:    clock,
		scheme:   scheme,
		schedule: schedule,
		gauge: promauto.With(registerer).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shiptrack_shipments_by_status",
				Help: "Number of shipments per derived status at the last census",
			},
			[]string{"status"},
		),
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "status_census_job"),
	}
}

// Run takes one census. Every shipment is derived against the same instant.
func (j *StatusCensusJob) Run(ctx context.Context) (map[shipment.Status]int, error) {
	now := j.clock.Now()
	counts := make(map[shipment.Status]int, len(j.labels()))
	for _, status := range j.labels() {
		counts[status] = 0
	}

	var after kernel.ID
	for {
		page, err := j.source.ListAfter(ctx, after, CensusPageSize)
		if err != nil {
			return nil, fmt.Errorf("list shipments after %d: %w", after, err)
		}

		for _, s := range page {
			counts[s.Derive(now).Label(j.scheme)]++
			after = s.ID()
		}

		if len(page) < CensusPageSize {
			break
		}
	}

	for status, n := range counts {
		j.gauge.WithLabelValues(status.String()).Set(float64(n))
	}
	return counts, nil
}

// labels are the statuses the scheme can render, so statuses that drop to zero
// are still published.
func (j *StatusCensusJob) labels() []shipment.Status {
	if j.scheme == shipment.Legacy {
		return []shipment.Status{shipment.InTransit, shipment.OnTime, shipment.Delayed}
	}
	return []shipment.Status{shipment.InTransit, shipment.OnTime, shipment.Delivered}
}

// Start schedules the census.
func (j *StatusCensusJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		counts, err := j.Run(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Status census failed", "error", err)
			return
		}
		j.logger.DebugContext(ctx, "Status census taken", "counts", counts)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status census job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running census to finish.
func (j *StatusCensusJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status census job stopped")
}
