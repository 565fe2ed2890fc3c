package shipperrepo

import (
	"context"
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/shipper"
	"mealdrop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipperLocationRepository implements ports.ShipperLocationRepository
// using GORM.
type GormShipperLocationRepository struct {
	db *gorm.DB
}

// NewGormShipperLocationRepository creates a new GORM location repository.
func NewGormShipperLocationRepository(db *gorm.DB) *GormShipperLocationRepository {
	return &GormShipperLocationRepository{db: db}
}

// Upsert stores the position, replacing any previous report for the shipper.
func (r *GormShipperLocationRepository) Upsert(ctx context.Context, location shipper.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	dto := fromDomain(location)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shipper_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// Get retrieves the shipper's last reported position.
func (r *GormShipperLocationRepository) Get(ctx context.Context, shipperID kernel.UUID) (shipper.Location, error) {
	if err := shipperID.Validate(); err != nil {
		return shipper.Location{}, err
	}

	var dto ShipperLocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipper_id = ?", shipperID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shipper.Location{}, errs.NewObjectNotFoundError("shipper location", shipperID)
		}
		return shipper.Location{}, err
	}

	return toDomain(dto)
}
