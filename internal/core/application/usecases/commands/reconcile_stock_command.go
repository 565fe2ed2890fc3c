package commands

import (
	"errors"

	"mealdrop/internal/pkg/guard"
)

var ErrReconcileStockCommandIsNotConstructed = errors.New(
	"ReconcileStockCommand must be created via NewReconcileStockCommand constructor",
)

// ReconcileStockCommand represents one sweep of the stock reconciliation job:
// find canceled orders whose reserved stock was never credited back and
// credit it.
type ReconcileStockCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileStockCommand creates a reconciliation command.
func NewReconcileStockCommand() ReconcileStockCommand {
	return ReconcileStockCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileStockCommand) Validate() error {
	return c.guard.Validate(ErrReconcileStockCommandIsNotConstructed)
}
