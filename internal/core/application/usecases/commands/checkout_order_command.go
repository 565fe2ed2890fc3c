package commands

import (
	"errors"
	"fmt"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/errs"
	"mealdrop/internal/pkg/guard"
)

var (
	ErrCheckoutOrderCommandIsNotConstructed = errors.New(
		"CheckoutOrderCommand must be created via NewCheckoutOrderCommand constructor",
	)
	ErrOrderHasNoLines = errs.NewValueIsRequiredError("order must contain at least one line")
)

// CheckoutLine is one requested item/quantity pair of a checkout.
type CheckoutLine struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// CheckoutOrderCommand represents a customer's request to place an order:
// reserve stock for every requested line and create the order atomically.
//
// Example:
//
//	cmd, err := NewCheckoutOrderCommand(orderID, customerID, merchantID,
//	    "12 Nguyen Trai", "no onions",
//	    []CheckoutLine{{MenuItemID: itemID, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.InsufficientStockError when a line cannot be covered
//	    return err
//	}
type CheckoutOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	merchantID      kernel.UUID
	deliveryAddress string
	note            string
	lines           []CheckoutLine

	guard guard.ConstructorGuard
}

// NewCheckoutOrderCommand creates a checkout command. The line list must be
// non-empty, name each menu item at most once, and carry positive quantities.
func NewCheckoutOrderCommand(
	orderID, customerID, merchantID kernel.UUID,
	deliveryAddress, note string,
	lines []CheckoutLine,
) (CheckoutOrderCommand, error) {
	cmd := CheckoutOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, customerID, merchantID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setLines(lines),
	); err != nil {
		return CheckoutOrderCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutOrderCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutOrderCommandIsNotConstructed)
}

func (c CheckoutOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CheckoutOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CheckoutOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

func (c CheckoutOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CheckoutOrderCommand) Note() string {
	return c.note
}

func (c CheckoutOrderCommand) Lines() []CheckoutLine {
	return c.lines
}

func (c *CheckoutOrderCommand) setIDs(orderID, customerID, merchantID kernel.UUID) error {
	if err := errors.Join(
		orderID.Validate(), customerID.Validate(), merchantID.Validate(),
	); err != nil {
		return err
	}

	c.orderID = orderID
	c.customerID = customerID
	c.merchantID = merchantID
	return nil
}

func (c *CheckoutOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CheckoutOrderCommand) setLines(lines []CheckoutLine) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return err
		}

		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", line.Quantity))
		}

		if _, ok := seen[line.MenuItemID]; ok {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("menu item %s appears more than once", line.MenuItemID))
		}
		seen[line.MenuItemID] = struct{}{}
	}

	c.lines = lines
	return nil
}
