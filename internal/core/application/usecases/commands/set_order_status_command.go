package commands

import (
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand represents a request to move an order to a new
// status on behalf of an authenticated actor. Claiming and cancellation have
// their own commands; this one covers the remaining transitions such as the
// merchant confirming or the shipper picking up.
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	role    order.Role
	target  order.Status

	guard guard.ConstructorGuard
}

// NewSetOrderStatusCommand creates a status change command.
func NewSetOrderStatusCommand(
	orderID, actorID kernel.UUID,
	role order.Role,
	target order.Status,
) (SetOrderStatusCommand, error) {
	cmd := SetOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		role.Validate(),
		target.Validate(),
	); err != nil {
		return SetOrderStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.role = role
	cmd.target = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c SetOrderStatusCommand) Role() order.Role {
	return c.role
}

func (c SetOrderStatusCommand) Target() order.Status {
	return c.target
}
