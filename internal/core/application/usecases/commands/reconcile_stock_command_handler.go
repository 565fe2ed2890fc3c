package commands

import (
	"context"
	"log/slog"

	"mealdrop/internal/core/domain/model/kernel"
)

// ReconcileStockCommandHandler sweeps canceled orders whose stock credit was
// missed, normally because the cancellation happened outside the
// transactional path. Each order is settled in its own transaction so one
// bad row does not block the rest of the sweep.
type ReconcileStockCommandHandler struct {
	uowFactory StockUoWFactory
	logger     *slog.Logger
}

// NewReconcileStockCommandHandler creates a handler for the reconciliation sweep.
func NewReconcileStockCommandHandler(uowFactory StockUoWFactory, logger *slog.Logger) ReconcileStockCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return ReconcileStockCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_stock"),
	}
}

// Handle runs one sweep. Per-order failures are logged and skipped; the
// sweep itself only fails when the candidate list cannot be read.
func (h *ReconcileStockCommandHandler) Handle(ctx context.Context, cmd ReconcileStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	candidates, err := uow.OrderRepository().GetAllCanceledUnreleased(ctx)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
		h.logger.WarnContext(ctx, "failed to roll back candidate read", "error", rollbackErr)
	}
	if err != nil {
		return err
	}

	settled := 0
	for _, candidate := range candidates {
		if err := h.settle(ctx, candidate.ID()); err != nil {
			h.logger.ErrorContext(ctx, "failed to settle canceled order",
				"order_id", candidate.ID().String(), "error", err)
			continue
		}
		settled++
	}

	if len(candidates) > 0 {
		h.logger.InfoContext(ctx, "stock reconciliation sweep finished",
			"candidates", len(candidates), "settled", settled)
	}

	return nil
}

func (h *ReconcileStockCommandHandler) settle(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	// Re-read under lock: the order may have been settled since the sweep
	// listed it.
	aggregate, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	releases, err := aggregate.ReleaseRemainingStock()
	if err != nil {
		return err
	}

	if len(releases) == 0 {
		return nil
	}

	if err = uow.InventoryRepository().Release(ctx, toReserveLines(releases)); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
