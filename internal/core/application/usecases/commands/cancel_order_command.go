package commands

import (
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order. Cancelling
// before the food leaves the merchant credits the reserved stock back in the
// same transaction.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	role    order.Role

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command.
func NewCancelOrderCommand(orderID, actorID kernel.UUID, role order.Role) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(), actorID.Validate(), role.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.role = role
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c CancelOrderCommand) Role() order.Role {
	return c.role
}
