package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/user"
	"shiptrack/internal/pkg/guard"
)

var ErrGetUsersQueryIsNotConstructed = errors.New(
	"GetUsersQuery must be created via NewGetUsersQuery constructor",
)

// GetUsersQuery lists users, optionally only the one with the given email.
//
// Example:
//
//	query := NewGetUsersQuery("")            // everybody
//	query := NewGetUsersQuery("bob@example.com") // zero or one user
type GetUsersQuery struct {
	email string

	guard guard.ConstructorGuard
}

// NewGetUsersQuery normalizes the email filter the same way user emails are stored.
func NewGetUsersQuery(email string) GetUsersQuery {
	return GetUsersQuery{
		email: user.NormalizeEmail(email),
		guard: guard.NewConstructorGuard(),
	}
}

func (q GetUsersQuery) Validate() error {
	return q.guard.Validate(ErrGetUsersQueryIsNotConstructed)
}

// Email is the normalized filter, empty for no filter.
func (q GetUsersQuery) Email() string {
	return q.email
}

// GetUsersQueryResponse is the user read model.
type GetUsersQueryResponse struct {
	ID        kernel.ID
	Email     string
	Name      *string
	CreatedAt time.Time
}
