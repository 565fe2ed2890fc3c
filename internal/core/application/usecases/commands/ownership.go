package commands

import (
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/errs"
)

// checkOwnership verifies the actor is a party to the order: the customer who
// placed it, the merchant it was placed with, or the shipper it is assigned
// to. Admins see everything. A mismatch reports the order as not found so the
// API never confirms the existence of other people's orders.
func checkOwnership(aggregate *order.Order, actorID kernel.UUID, role order.Role) error {
	owns := false

	switch role {
	case order.RoleCustomer:
		owns = aggregate.CustomerID().IsEqual(actorID)
	case order.RoleMerchant:
		owns = aggregate.MerchantID().IsEqual(actorID)
	case order.RoleShipper:
		owns = aggregate.ShipperID() != nil && aggregate.ShipperID().IsEqual(actorID)
	case order.RoleAdmin:
		owns = true
	}

	if !owns {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}
