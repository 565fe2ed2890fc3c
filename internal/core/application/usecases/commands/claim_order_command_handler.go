package commands

import (
	"context"
	"log/slog"

	"mealdrop/internal/core/ports"
)

// ClaimOrderCommandHandler assigns an order to a shipper. The assignment is a
// single compare-and-swap in the repository, conditional on the order still
// being unassigned and claimable, so no lock is held while the shipper
// decides.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewClaimOrderCommandHandler creates a handler for order claims.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ClaimOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "claim_order"),
	}
}

// Handle processes the claim. A lost race surfaces as errs.ConflictError;
// claiming an order that is past the claimable window surfaces as
// errs.InvalidStateTransitionError.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	aggregate, err := uow.OrderRepository().Claim(ctx, cmd.OrderID(), cmd.ShipperID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.logger, h.publisher, aggregate)
	return nil
}
