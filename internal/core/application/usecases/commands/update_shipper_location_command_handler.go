package commands

import (
	"context"
	"time"

	"mealdrop/internal/core/domain/model/shipper"
)

// UpdateShipperLocationCommandHandler stores a shipper's reported position.
type UpdateShipperLocationCommandHandler struct {
	uowFactory LocationUoWFactory
}

// NewUpdateShipperLocationCommandHandler creates a handler for position reports.
func NewUpdateShipperLocationCommandHandler(uowFactory LocationUoWFactory) UpdateShipperLocationCommandHandler {
	return UpdateShipperLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle upserts the position, stamped with the current time.
func (h *UpdateShipperLocationCommandHandler) Handle(ctx context.Context, cmd UpdateShipperLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := shipper.NewLocation(cmd.ShipperID(), cmd.Position(), time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipperLocationRepository().Upsert(ctx, location); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
