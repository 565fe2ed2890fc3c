// Package shipper holds the shipper-side state the dispatch flow reads: the
// last reported location of each shipper and the freshness policy applied to
// it when ranking available orders.
package shipper

import (
	"errors"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
)

var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation or RestoreLocation")

// Location is the last position a shipper reported, keyed by shipper id.
// Positions go stale quickly; IsFresh decides whether a stored position may
// still be used for distance ranking.
type Location struct {
	shipperID kernel.UUID
	point     kernel.GeoPoint
	updatedAt time.Time

	isConstructed bool
}

func NewLocation(shipperID kernel.UUID, point kernel.GeoPoint, updatedAt time.Time) (Location, error) {
	if err := errors.Join(shipperID.Validate(), point.Validate()); err != nil {
		return Location{}, err
	}

	return Location{
		shipperID:     shipperID,
		point:         point,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func RestoreLocation(shipperID kernel.UUID, point kernel.GeoPoint, updatedAt time.Time) Location {
	return Location{
		shipperID:     shipperID,
		point:         point,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

func (l Location) Validate() error {
	if !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

func (l Location) ShipperID() kernel.UUID {
	return l.shipperID
}

func (l Location) Point() kernel.GeoPoint {
	return l.point
}

func (l Location) UpdatedAt() time.Time {
	return l.updatedAt
}

// IsFresh reports whether the position was reported within ttl of now.
// Stale positions are ignored by dispatch ranking rather than rejected.
func (l Location) IsFresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(l.updatedAt) <= ttl
}
