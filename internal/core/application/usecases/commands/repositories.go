// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shiptrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// LocationRepoFactory provides access to the location repository within a transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// UserUoW manages transactions for user-only operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW manages transactions that read or write locations and shipments together.
	// Ownership checks and the write that follows them always share one UoW.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   guard := services.NewOwnershipGuard(uow.LocationRepository(), uow.ShipmentRepository())
	//   // ... check, mutate, persist
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		LocationRepoFactory
		ShipmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for location and shipment operations.
	UoWFactory interface {
		Create() UoW
	}
)
