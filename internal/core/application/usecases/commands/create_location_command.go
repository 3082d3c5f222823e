package commands

import (
	"errors"
	"strings"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/location"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateLocationCommandIsNotConstructed = errors.New(
	"CreateLocationCommand must be created via NewCreateLocationCommand constructor",
)

// AddressInput carries the raw address lines of a new location.
type AddressInput struct {
	Line1      string
	Line2      string
	City       string
	State      string
	Country    string
	PostalCode string
}

// CreateLocationCommand adds a named address to the caller's address book.
//
// Example:
//
//	cmd, err := NewCreateLocationCommand(userID, "Home",
//	    AddressInput{Line1: "Calle Mayor 1", City: "Madrid", Country: "ES"}, 40.4168, -3.7038)
type CreateLocationCommand struct { //nolint:recvcheck //using for validation
	ownerID  kernel.ID
	nickname string
	address  location.Address
	point    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateLocationCommand validates the owner, address and coordinates. Every
// invalid field is reported at once.
func NewCreateLocationCommand(
	ownerID kernel.ID,
	nickname string,
	address AddressInput,
	lat float64,
	lng float64,
) (CreateLocationCommand, error) {
	addr, addrErr := location.NewAddress(
		address.Line1, address.Line2, address.City, address.State, address.Country, address.PostalCode)
	point, pointErr := kernel.NewGeoPoint(lat, lng)

	var nicknameErr error
	if strings.TrimSpace(nickname) == "" {
		nicknameErr = location.ErrNicknameIsRequired
	}

	if err := errors.Join(ownerID.Validate(), nicknameErr, addrErr, pointErr); err != nil {
		return CreateLocationCommand{}, err
	}

	return CreateLocationCommand{
		ownerID:  ownerID,
		nickname: nickname,
		address:  addr,
		point:    point,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateLocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateLocationCommandIsNotConstructed)
}

func (c CreateLocationCommand) OwnerID() kernel.ID        { return c.ownerID }
func (c CreateLocationCommand) Nickname() string          { return c.nickname }
func (c CreateLocationCommand) Address() location.Address { return c.address }
func (c CreateLocationCommand) Point() kernel.GeoPoint    { return c.point }
