package commands

import (
	"context"

	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/errs"
)

// RefundOrderCommandHandler marks a paid order as refunded. Only the merchant
// the order was placed with, or an admin, may refund it.
type RefundOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRefundOrderCommandHandler creates a handler for refunds.
func NewRefundOrderCommandHandler(uowFactory OrderUoWFactory) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refund.
func (h *RefundOrderCommandHandler) Handle(ctx context.Context, cmd RefundOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Role() != order.RoleMerchant && cmd.Role() != order.RoleAdmin {
		return errs.NewForbiddenError(cmd.Role().String(), "refund an order")
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

	if err = aggregate.Refund(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
