// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// StatusCensusJob walks every shipment in pages of CensusPageSize, derives its status
// against a single "now" and publishes shiptrack_shipments_by_status. Statuses are
// never written back.
//
// # Usage
//
//	census := jobs.NewStatusCensusJob(shipments, clock, scheme, "@every 1m", registry, logger)
//	jobManager := jobs.NewJobManager(census)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed census is logged and the previous gauge values are kept until the next
// successful run. Failed job starts stop any already running jobs.
package jobs
