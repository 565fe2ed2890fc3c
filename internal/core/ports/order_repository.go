package ports

import (
	"context"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id, lines included.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order by id with a row lock held for the
	// remainder of the surrounding transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim assigns an order to a shipper with a single compare-and-swap:
	// it succeeds only if the order is still unassigned and in a claimable
	// status. On a lost race it returns errs.ConflictError; claiming an
	// order in a non-claimable status returns errs.InvalidStateTransitionError.
	Claim(ctx context.Context, orderID, shipperID kernel.UUID) (*order.Order, error)

	// GetAllCanceledUnreleased retrieves canceled orders whose stock was
	// never returned. Used by the reconciliation job.
	GetAllCanceledUnreleased(ctx context.Context) ([]*order.Order, error)
}
