// Package ports defines the contracts between the core and its infrastructure:
// repositories for each aggregate and the unit of work that binds them to one
// transaction.
package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user and returns the assigned identifier.
	// A duplicate email fails with gorm.ErrDuplicatedKey translated by the adapter.
	Add(ctx context.Context, aggregate *user.User) (kernel.ID, error)

	// Get retrieves a user by identifier. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.ID) (*user.User, error)

	// GetByEmail retrieves a user by normalized email. Returns errs.ErrObjectNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// List returns every user ordered by ascending id.
	List(ctx context.Context) ([]*user.User, error)

	// Delete removes a user. Users still owning locations or shipments are rejected
	// by referential integrity.
	Delete(ctx context.Context, id kernel.ID) error
}
