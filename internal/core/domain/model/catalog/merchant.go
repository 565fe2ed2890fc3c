package catalog

import (
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/errs"
)

var ErrMerchantIsNotConstructed = errors.New("Merchant must be created via NewMerchant or RestoreMerchant")

// Merchant is the seller an order is placed against. Location is the pickup
// point used for dispatch distance ranking; merchants without a geocoded
// address carry a nil location and rank after located ones.
type Merchant struct {
	id       kernel.UUID
	name     string
	address  string
	location *kernel.GeoPoint
	isActive bool

	isConstructed bool
}

func NewMerchant(id kernel.UUID, name, address string, location *kernel.GeoPoint) (Merchant, error) {
	if err := id.Validate(); err != nil {
		return Merchant{}, err
	}

	if name == "" {
		return Merchant{}, errs.NewValueIsRequiredError("name")
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return Merchant{}, err
		}
	}

	return Merchant{
		id:            id,
		name:          name,
		address:       address,
		location:      location,
		isActive:      true,
		isConstructed: true,
	}, nil
}

func RestoreMerchant(id kernel.UUID, name, address string, location *kernel.GeoPoint, isActive bool) Merchant {
	return Merchant{
		id:            id,
		name:          name,
		address:       address,
		location:      location,
		isActive:      isActive,
		isConstructed: true,
	}
}

func (m Merchant) Validate() error {
	if !m.isConstructed {
		return ErrMerchantIsNotConstructed
	}
	return nil
}

func (m Merchant) ID() kernel.UUID {
	return m.id
}

func (m Merchant) Name() string {
	return m.name
}

func (m Merchant) Address() string {
	return m.address
}

// Location returns the merchant's pickup point, nil when not geocoded.
func (m Merchant) Location() *kernel.GeoPoint {
	return m.location
}

func (m Merchant) IsActive() bool {
	return m.isActive
}
