package ports

import (
	"context"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/shipper"
)

// ShipperLocationRepository defines the persistence contract for the last
// reported position of each shipper.
type ShipperLocationRepository interface {
	// Upsert stores the shipper's position, replacing any previous one.
	Upsert(ctx context.Context, location shipper.Location) error

	// Get retrieves the shipper's last reported position.
	// Returns errs.ObjectNotFoundError when the shipper never reported one.
	Get(ctx context.Context, shipperID kernel.UUID) (shipper.Location, error)
}
