package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrGetLocationsQueryIsNotConstructed = errors.New(
	"GetLocationsQuery must be created via NewGetLocationsQuery constructor",
)

// GetLocationsQuery lists the locations owned by a user.
type GetLocationsQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetLocationsQuery(ownerID kernel.ID) (GetLocationsQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetLocationsQuery{}, err
	}
	return GetLocationsQuery{ownerID: ownerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationsQueryIsNotConstructed)
}

func (q GetLocationsQuery) OwnerID() kernel.ID {
	return q.ownerID
}

// GetLocationsQueryResponse is the location read model. Optional address lines are
// empty strings when absent.
type GetLocationsQueryResponse struct {
	ID         kernel.ID
	Nickname   string
	Address1   string
	Address2   string
	City       string
	State      string
	Country    string
	PostalCode string
	Lat        float64
	Lng        float64
	CreatedAt  time.Time
}
