// Package inventoryrepo provides persistence for menu item stock. All stock
// mutation goes through conditional single-statement updates so concurrent
// checkouts serialize at the database without application level locks.
package inventoryrepo

import (
	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemDTO represents the database structure for menu items.
type MenuItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID  uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Price       decimal.Decimal `gorm:"type:numeric(14,2)"`
	Stock       int
	IsAvailable bool `gorm:"index"`
}

// TableName overrides GORM's default naming to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// FromDomain converts a menu item to its database representation. Exported
// for seeding in integration tests and migrations.
func FromDomain(item catalog.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:          item.ID().Bytes(),
		MerchantID:  item.MerchantID().Bytes(),
		Name:        item.Name(),
		Price:       item.Price(),
		Stock:       item.Stock(),
		IsAvailable: item.IsAvailable(),
	}
}

func toDomain(dto MenuItemDTO) (catalog.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.MenuItem{}, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return catalog.MenuItem{}, err
	}

	return catalog.RestoreMenuItem(
		id, merchantID, dto.Name, dto.Price, dto.Stock, dto.IsAvailable), nil
}
