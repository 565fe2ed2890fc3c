package commands

import (
	"context"
	"log/slog"

	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/core/ports"
)

// publishStatusChanged announces an order status change after the owning
// transaction committed. Publishing is best effort: failures are logged and
// never surfaced to the caller.
func publishStatusChanged(
	ctx context.Context,
	logger *slog.Logger,
	publisher ports.OrderEventPublisher,
	aggregate *order.Order,
) {
	if publisher == nil {
		return
	}

	if err := publisher.PublishStatusChanged(ctx, aggregate); err != nil {
		logger.WarnContext(ctx, "failed to publish order status change",
			"order_id", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err)
	}
}
