package ports

import (
	"context"

	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"
)

// ReserveLine is one item/quantity pair of a reservation request.
type ReserveLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// InventoryRepository defines the persistence contract for menu item stock.
// Reserve and Release are the only stock mutations in the system; both are
// single conditional statements so concurrent checkouts can never drive
// stock negative.
type InventoryRepository interface {
	// Get retrieves a menu item by id.
	// Returns errs.ObjectNotFoundError when no such item exists.
	Get(ctx context.Context, id kernel.UUID) (catalog.MenuItem, error)

	// Reserve decrements stock for every line, atomically per item, and
	// returns the reserved items in line order. An item whose remaining
	// stock falls to zero is marked unavailable in the same statement.
	// Returns errs.InsufficientStockError for the first line that cannot be
	// covered; the surrounding transaction must then roll back.
	Reserve(ctx context.Context, lines []ReserveLine) ([]catalog.MenuItem, error)

	// Release returns previously reserved stock, marking items available
	// again. Items that no longer exist are skipped.
	Release(ctx context.Context, lines []ReserveLine) error
}
