// Package merchantrepo provides read-side persistence for merchants.
package merchantrepo

import (
	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MerchantDTO represents the database structure for merchants. The pickup
// location columns are nullable; a merchant without one simply ranks last in
// the dispatch feed.
type MerchantDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Address     string
	LocationLat *float64
	LocationLng *float64
	IsActive    bool `gorm:"index"`
}

// TableName overrides GORM's default naming to use "merchants".
func (MerchantDTO) TableName() string {
	return "merchants"
}

// FromDomain converts a merchant to its database representation. Exported
// for seeding in integration tests and migrations.
func FromDomain(merchant catalog.Merchant) MerchantDTO {
	var lat, lng *float64
	if location := merchant.Location(); location != nil {
		latV := location.Latitude()
		lngV := location.Longitude()
		lat, lng = &latV, &lngV
	}

	return MerchantDTO{
		ID:          merchant.ID().Bytes(),
		Name:        merchant.Name(),
		Address:     merchant.Address(),
		LocationLat: lat,
		LocationLng: lng,
		IsActive:    merchant.IsActive(),
	}
}

func toDomain(dto MerchantDTO) (catalog.Merchant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Merchant{}, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLng)
		if pointErr != nil {
			return catalog.Merchant{}, pointErr
		}
		location = &point
	}

	return catalog.RestoreMerchant(id, dto.Name, dto.Address, location, dto.IsActive), nil
}
