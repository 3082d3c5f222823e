// Package postgres provides the GORM-based Unit of Work that binds the user,
// location and shipment repositories to one database transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	id, err := uow.ShipmentRepository().Add(ctx, s)
//	if err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin, or from a unit of work that never begins,
// run directly against the connection pool. Read-only queries rely on this.
//
// Each UnitOfWork instance holds its own transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"
	"log/slog"

	"shiptrack/internal/adapters/out/postgres/locationrepo"
	"shiptrack/internal/adapters/out/postgres/shipmentrepo"
	"shiptrack/internal/adapters/out/postgres/userrepo"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, slog.Default())
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{db: db, logger: logger}
}

// Create produces a new UnitOfWork with its own transaction state and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin twice on the same instance is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the current transaction and forgets the tracked aggregates.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	if len(uow.trackedAggregates) > 0 {
		ids := make([]int64, 0, len(uow.trackedAggregates))
		for _, tracked := range uow.trackedAggregates {
			ids = append(ids, tracked.ID.Int64())
		}
		uow.logger.DebugContext(ctx, "unit of work committed", "aggregates", ids)
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// UserRepository returns a user repository bound to the active transaction, or to
// the connection pool when no transaction is active.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

// LocationRepository returns a location repository bound to the active transaction.
func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return locationrepo.NewGormLocationRepository(uow.conn(), uow)
}

// ShipmentRepository returns a shipment repository bound to the active transaction.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
