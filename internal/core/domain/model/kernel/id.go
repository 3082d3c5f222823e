package kernel

import (
	"math"
	"strconv"

	"shiptrack/internal/pkg/errs"
)

// ID identifies a user, location or shipment. Identifiers are assigned by the
// repository on insert and are always positive.
type ID int64

// NewID wraps a raw identifier, rejecting zero and negative values.
func NewID(value int64) (ID, error) {
	id := ID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate reports whether the identifier is positive.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), 1, int64(math.MaxInt64))
	}
	return nil
}

// Int64 returns the raw identifier.
func (id ID) Int64() int64 {
	return int64(id)
}

// IsEqual reports whether both identifiers are the same.
func (id ID) IsEqual(other ID) bool {
	return id == other
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
