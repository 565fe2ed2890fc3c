// Package shipperrepo provides persistence for shipper position reports.
package shipperrepo

import (
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/shipper"

	"github.com/google/uuid"
)

// ShipperLocationDTO represents the last reported position per shipper.
// One row per shipper; every report overwrites the previous one.
type ShipperLocationDTO struct {
	ShipperID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Lat       float64
	Lng       float64
	// The report time comes from the domain, not from GORM's timestamp
	// tracking; freshness checks depend on it.
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName overrides GORM's default naming to use "shipper_locations".
func (ShipperLocationDTO) TableName() string {
	return "shipper_locations"
}

func fromDomain(location shipper.Location) ShipperLocationDTO {
	return ShipperLocationDTO{
		ShipperID: location.ShipperID().Bytes(),
		Lat:       location.Point().Latitude(),
		Lng:       location.Point().Longitude(),
		UpdatedAt: location.UpdatedAt(),
	}
}

func toDomain(dto ShipperLocationDTO) (shipper.Location, error) {
	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return shipper.Location{}, err
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return shipper.Location{}, err
	}

	return shipper.RestoreLocation(shipperID, point, dto.UpdatedAt), nil
}
