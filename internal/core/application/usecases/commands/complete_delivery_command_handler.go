package commands

import (
	"context"
	"log/slog"

	"mealdrop/internal/core/ports"
)

// CompleteDeliveryCommandHandler marks a DELIVERING order as DELIVERED.
// Only the shipper the order is assigned to (or an admin) may complete it.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "complete_delivery"),
	}
}

// Handle processes the completion.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if err = aggregate.CompleteDelivery(cmd.Role(), cmd.ShipperID()); err != nil {
		return err
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
