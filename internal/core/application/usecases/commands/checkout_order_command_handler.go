package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/core/ports"
	"mealdrop/internal/pkg/errs"
)

// CheckoutOrderCommandHandler places an order. Stock reservation, price
// snapshotting and order creation happen inside one transaction: either every
// line is reserved and the order exists, or nothing changed.
type CheckoutOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCheckoutOrderCommandHandler creates a handler for checkout operations.
// The publisher is notified after commit; a nil logger falls back to the
// default one.
func NewCheckoutOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CheckoutOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CheckoutOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "checkout"),
	}
}

// Handle processes the checkout command. The reservation is a conditional
// decrement per line, so a concurrent checkout for the same item can never
// oversell; the loser gets errs.InsufficientStockError and the whole
// transaction rolls back.
func (h *CheckoutOrderCommandHandler) Handle(ctx context.Context, cmd CheckoutOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	merchant, err := uow.MerchantRepository().Get(ctx, cmd.MerchantID())
	if err != nil {
		return err
	}

	if !merchant.IsActive() {
		return errs.NewValueIsInvalidError("merchant is not accepting orders")
	}

	reserveLines := make([]ports.ReserveLine, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		reserveLines = append(reserveLines, ports.ReserveLine{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
		})
	}

	items, err := uow.InventoryRepository().Reserve(ctx, reserveLines)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.MerchantID(),
		cmd.DeliveryAddress(), cmd.Note(), time.Now().UTC())
	if err != nil {
		return err
	}

	for i, item := range items {
		if !item.MerchantID().IsEqual(cmd.MerchantID()) {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("menu item %s belongs to another merchant", item.ID()))
		}

		line, err := order.NewLine(
			kernel.NewUUID(), item.ID(), item.Name(), item.Price(),
			cmd.Lines()[i].Quantity)
		if err != nil {
			return err
		}

		if err = newOrder.AddLine(line); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.logger, h.publisher, newOrder)
	return nil
}
