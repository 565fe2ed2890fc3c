package commands

import (
	"context"
	"log/slog"

	"mealdrop/internal/core/ports"
)

// SetOrderStatusCommandHandler applies a role-scoped status transition to an
// order. The order row is locked for the duration of the transaction, so two
// concurrent transitions serialize and the second one sees the first one's
// result.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewSetOrderStatusCommandHandler creates a handler for status transitions.
func NewSetOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) SetOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "set_order_status"),
	}
}

// Handle processes the status change. Ownership is checked before the
// transition so a stranger probing someone else's order gets the same answer
// as for an order that does not exist.
func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) error {
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

	if err = aggregate.Transition(cmd.Role(), cmd.Target()); err != nil {
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
