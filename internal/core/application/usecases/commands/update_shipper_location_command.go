package commands

import (
	"errors"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/guard"
)

var ErrUpdateShipperLocationCommandIsNotConstructed = errors.New(
	"UpdateShipperLocationCommand must be created via NewUpdateShipperLocationCommand constructor",
)

// UpdateShipperLocationCommand represents a shipper reporting their current
// position. The latest report wins; stale reports age out of dispatch
// ranking via the freshness window.
type UpdateShipperLocationCommand struct { //nolint:recvcheck //using for validation
	shipperID kernel.UUID
	position  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateShipperLocationCommand creates a position report command.
func NewUpdateShipperLocationCommand(shipperID kernel.UUID, position kernel.GeoPoint) (UpdateShipperLocationCommand, error) {
	cmd := UpdateShipperLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(shipperID.Validate(), position.Validate()); err != nil {
		return UpdateShipperLocationCommand{}, err
	}

	cmd.shipperID = shipperID
	cmd.position = position
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipperLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipperLocationCommandIsNotConstructed)
}

func (c UpdateShipperLocationCommand) ShipperID() kernel.UUID {
	return c.shipperID
}

func (c UpdateShipperLocationCommand) Position() kernel.GeoPoint {
	return c.position
}
