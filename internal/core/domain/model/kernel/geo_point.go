package kernel

import (
	"errors"
	"fmt"
	"math"

	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

const (
	// LatitudeMin and LatitudeMax bound a valid latitude in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0
	// LongitudeMin and LongitudeMax bound a valid longitude in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when a GeoPoint zero value is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is a validated latitude/longitude pair.
// The zero value is invalid and fails Validate.
//
// Example:
//
//	madrid, err := kernel.NewGeoPoint(40.4168, -3.7038)
//	if err != nil {
//	    // coordinates out of range
//	}
//	fmt.Println(madrid) // GeoPoint(40.4168,-3.7038)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint. Latitude must be within [-90, 90] and longitude
// within [-180, 180]; NaN is rejected for both.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the point was built by NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.lat, p.lng)
}

// IsEqual compares two points by coordinates. Both must be constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKm returns the great-circle (haversine) distance to other, rounded to
// the nearest kilometre.
//
// Example:
//
//	madrid, _ := NewGeoPoint(40.4168, -3.7038)
//	barcelona, _ := NewGeoPoint(41.3874, 2.1686)
//	km, _ := madrid.DistanceKm(barcelona) // 505
func (p GeoPoint) DistanceKm(other GeoPoint) (int, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(p.lat)
	lat2 := toRadians(other.lat)
	dLat := toRadians(other.lat - p.lat)
	dLng := toRadians(other.lng - p.lng)

	s := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)

	return int(math.Round(earthRadiusKm * 2 * math.Asin(math.Sqrt(s)))), nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	p.lng = lng
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
