package location

import (
	"errors"
	"strings"

	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address zero value is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the postal part of a location. City and country are mandatory;
// the other lines are optional and kept as empty strings when absent.
type Address struct { //nolint:recvcheck //using for validation
	line1      string
	line2      string
	city       string
	state      string
	country    string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewAddress trims every field and validates the mandatory ones.
func NewAddress(line1, line2, city, state, country, postalCode string) (Address, error) {
	a := Address{
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(a.setCity(city), a.setCountry(country)); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) Country() string    { return a.country }
func (a Address) PostalCode() string { return a.postalCode }

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	a.country = country
	return nil
}
