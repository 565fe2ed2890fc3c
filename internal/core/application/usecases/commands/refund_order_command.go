package commands

import (
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/guard"
)

var ErrRefundOrderCommandIsNotConstructed = errors.New(
	"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
)

// RefundOrderCommand represents a merchant resolving a payment dispute by
// refunding a paid order. The payment flag is binary: any refund, full or
// partial at the payment provider, marks the order REFUNDED here.
type RefundOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	role    order.Role

	guard guard.ConstructorGuard
}

// NewRefundOrderCommand creates a refund command.
func NewRefundOrderCommand(orderID, actorID kernel.UUID, role order.Role) (RefundOrderCommand, error) {
	cmd := RefundOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(), actorID.Validate(), role.Validate(),
	); err != nil {
		return RefundOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.role = role
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

func (c RefundOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RefundOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c RefundOrderCommand) Role() order.Role {
	return c.role
}
