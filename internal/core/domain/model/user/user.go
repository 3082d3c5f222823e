package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

const (
	maxEmailLength = 254
	maxNameLength  = 200
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	ErrEmailIsRequired      = errs.NewValueIsRequiredError("email")
)

// User is a sender of shipments and the owner of locations.
type User struct {
	id        kernel.ID
	email     string
	name      *string
	createdAt time.Time

	isConstructed bool
}

// NewUser validates and normalizes email (trimmed, lower-cased). name is optional;
// a blank name is stored as nil.
func NewUser(email string, name *string) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(u.setEmail(email), u.setName(name)); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(id kernel.ID, email string, name *string, createdAt time.Time) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	u, err := NewUser(email, name)
	if err != nil {
		return nil, err
	}

	u.id = id
	u.createdAt = createdAt
	return u, nil
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.ID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Name() *string        { return u.name }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmailIsRequired
	}
	if len(email) > maxEmailLength {
		return errs.NewValueIsOutOfRangeError("email length", len(email), 3, maxEmailLength)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", errors.New("malformed address"))
	}

	u.email = email
	return nil
}

func (u *User) setName(name *string) error {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	if len(trimmed) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(trimmed), 1, maxNameLength)
	}
	u.name = &trimmed
	return nil
}
