package location

import (
	"errors"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

const maxNicknameLength = 100

var (
	// ErrLocationIsNotConstructed is returned when a Location was not built by NewLocation or RestoreLocation.
	ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")
	// ErrNicknameIsRequired is returned for an empty nickname.
	ErrNicknameIsRequired = errs.NewValueIsRequiredError("nickname")
	// ErrLocationIsInUse is returned when removing a location that shipments still reference.
	ErrLocationIsInUse = errs.NewValueIsInvalidErrorWithCause(
		"location", errors.New("location is used by existing shipments"))
)

// Location is a named address owned by one user. A location can be referenced by
// many shipments as their origin or destination; only its owner may send from it.
//
// Example:
//
//	addr, _ := location.NewAddress("1 Main St", "", "Madrid", "", "ES", "28013")
//	point, _ := kernel.NewGeoPoint(40.4168, -3.7038)
//	home, err := location.NewLocation(aliceID, "Home", addr, point)
type Location struct {
	id        kernel.ID
	ownerID   kernel.ID
	nickname  string
	address   Address
	point     kernel.GeoPoint
	createdAt time.Time

	isConstructed bool
}

// NewLocation creates a location that has not been persisted yet; its ID is zero
// until the repository assigns one.
func NewLocation(ownerID kernel.ID, nickname string, address Address, point kernel.GeoPoint) (*Location, error) {
	l := &Location{isConstructed: true}

	if err := errors.Join(
		l.setOwnerID(ownerID),
		l.setNickname(nickname),
		l.setAddress(address),
		l.setPoint(point),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLocation rebuilds a persisted location.
func RestoreLocation(
	id kernel.ID,
	ownerID kernel.ID,
	nickname string,
	address Address,
	point kernel.GeoPoint,
	createdAt time.Time,
) (*Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	l, err := NewLocation(ownerID, nickname, address, point)
	if err != nil {
		return nil, err
	}

	l.id = id
	l.createdAt = createdAt
	return l, nil
}

func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

func (l *Location) ID() kernel.ID          { return l.id }
func (l *Location) OwnerID() kernel.ID     { return l.ownerID }
func (l *Location) Nickname() string       { return l.nickname }
func (l *Location) Address() Address       { return l.address }
func (l *Location) Point() kernel.GeoPoint { return l.point }
func (l *Location) CreatedAt() time.Time   { return l.createdAt }

// IsOwnedBy reports whether userID owns the location.
func (l *Location) IsOwnedBy(userID kernel.ID) bool {
	return l.ownerID.IsEqual(userID)
}

// DistanceKm returns the great-circle distance between two locations.
func (l *Location) DistanceKm(other *Location) (int, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}
	return l.point.DistanceKm(other.point)
}

func (l *Location) setOwnerID(ownerID kernel.ID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	l.ownerID = ownerID
	return nil
}

func (l *Location) setNickname(nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return ErrNicknameIsRequired
	}
	if len(nickname) > maxNicknameLength {
		return errs.NewValueIsOutOfRangeError("nickname length", len(nickname), 1, maxNicknameLength)
	}
	l.nickname = nickname
	return nil
}

func (l *Location) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	l.address = address
	return nil
}

func (l *Location) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	l.point = point
	return nil
}
