package ports

import (
	"context"

	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"
)

// MerchantRepository defines the read contract for merchants.
type MerchantRepository interface {
	// Get retrieves a merchant by id.
	// Returns errs.ObjectNotFoundError when no such merchant exists.
	Get(ctx context.Context, id kernel.UUID) (catalog.Merchant, error)

	// GetAllByIDs retrieves the merchants for the given ids in one query.
	// Unknown ids are silently absent from the result.
	GetAllByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Merchant, error)
}
