package commands

import (
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a shipper taking an unassigned order off the
// dispatch feed. Of any number of shippers racing for the same order exactly
// one wins; the rest receive errs.ConflictError.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	shipperID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a claim command.
func NewClaimOrderCommand(orderID, shipperID kernel.UUID) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), shipperID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.shipperID = shipperID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ClaimOrderCommand) ShipperID() kernel.UUID {
	return c.shipperID
}
