package commands

import (
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents the assigned shipper marking a
// DELIVERING order as handed over.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	shipperID kernel.UUID
	role      order.Role

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a delivery completion command.
func NewCompleteDeliveryCommand(orderID, shipperID kernel.UUID, role order.Role) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(), shipperID.Validate(), role.Validate(),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	cmd.orderID = orderID
	cmd.shipperID = shipperID
	cmd.role = role
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CompleteDeliveryCommand) ShipperID() kernel.UUID {
	return c.shipperID
}

func (c CompleteDeliveryCommand) Role() order.Role {
	return c.role
}
