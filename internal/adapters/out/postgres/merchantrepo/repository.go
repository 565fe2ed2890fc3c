package merchantrepo

import (
	"context"
	"errors"

	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMerchantRepository implements ports.MerchantRepository using GORM.
type GormMerchantRepository struct {
	db *gorm.DB
}

// NewGormMerchantRepository creates a new GORM merchant repository.
func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

// Get retrieves a merchant by ID.
func (r *GormMerchantRepository) Get(ctx context.Context, id kernel.UUID) (catalog.Merchant, error) {
	if err := id.Validate(); err != nil {
		return catalog.Merchant{}, err
	}

	var dto MerchantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Merchant{}, errs.NewObjectNotFoundError("merchant", id)
		}
		return catalog.Merchant{}, err
	}

	return toDomain(dto)
}

// GetAllByIDs retrieves merchants for the given IDs in one query. Unknown
// IDs are absent from the result rather than an error.
func (r *GormMerchantRepository) GetAllByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Merchant, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []MerchantDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	merchants := make(map[kernel.UUID]catalog.Merchant, len(dtos))
	for _, dto := range dtos {
		merchant, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		merchants[merchant.ID()] = merchant
	}

	return merchants, nil
}
