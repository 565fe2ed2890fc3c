package commands

import (
	"context"
	"log/slog"

	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and, when the stock never left
// the merchant, credits it back. The status change and the stock credit
// commit together, and the order's released flag guarantees the credit
// happens at most once no matter how often cancellation is retried.
type CancelOrderCommandHandler struct {
	uowFactory StockUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory StockUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle processes the cancellation.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = checkOwnership(aggregate, cmd.ActorID(), cmd.Role()); err != nil {
		return err
	}

	releases, err := aggregate.Cancel(cmd.Role())
	if err != nil {
		return err
	}

	if len(releases) > 0 {
		if err = uow.InventoryRepository().Release(ctx, toReserveLines(releases)); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.logger, h.publisher, aggregate)
	return nil
}

// toReserveLines converts order lines back into stock credit requests. Lines
// whose menu item was deleted have nothing to credit and are skipped.
func toReserveLines(lines []order.Line) []ports.ReserveLine {
	out := make([]ports.ReserveLine, 0, len(lines))
	for _, line := range lines {
		if line.MenuItemID() == nil {
			continue
		}

		out = append(out, ports.ReserveLine{
			MenuItemID: *line.MenuItemID(),
			Quantity:   line.Quantity(),
		})
	}

	return out
}
