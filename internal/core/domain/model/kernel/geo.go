package kernel

import (
	"errors"
	"fmt"
	"math"

	"mealdrop/internal/pkg/errs"
	"mealdrop/internal/pkg/guard"
)

const (
	// LatitudeMin and LatitudeMax bound valid latitudes in decimal degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0
	// LongitudeMin and LongitudeMax bound valid longitudes in decimal degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
// GeoPoints must be created via NewGeoPoint so coordinates are always in range.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable latitude/longitude pair in decimal degrees.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(11.310897, 106.050406)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint, rejecting coordinates outside
// [-90, 90] latitude or [-180, 180] longitude.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.lat
}

func (p GeoPoint) Longitude() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKm computes the great-circle distance to other in kilometers using
// the haversine formula. Symmetric; zero for coincident points.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degToRad(p.lat)
	lat2 := degToRad(other.lat)
	dLat := degToRad(other.lat - p.lat)
	dLng := degToRad(other.lng - p.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}
	p.lng = lng
	return nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
