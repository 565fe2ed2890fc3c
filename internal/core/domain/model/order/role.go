package order

import (
	"fmt"

	"mealdrop/internal/pkg/errs"
)

// Role identifies the kind of actor requesting an operation. The core trusts
// the role claim handed to it by the identity provider and enforces
// authorization itself.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleShipper  Role = "shipper"
	RoleAdmin    Role = "admin"
)

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleMerchant, RoleShipper, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

type transition struct {
	from Status
	to   Status
}

// roleTransitions is the authorization table: which (from, to) pairs each role
// may request. Only pairs that are also legal in the transition graph belong
// here. Ownership checks (customer owns the order, merchant administers the
// order's merchant, shipper is the assigned shipper) are enforced by the
// command handlers, which know the actor and the loaded order.
func roleTransitions() map[Role]map[transition]struct{} {
	return map[Role]map[transition]struct{}{
		RoleCustomer: {
			{Pending, Canceled}:   {},
			{Confirmed, Canceled}: {},
		},
		RoleMerchant: {
			{Pending, Confirmed}:        {},
			{Pending, Canceled}:         {},
			{Confirmed, ReadyForPickup}: {},
			{Confirmed, Canceled}:       {},
		},
		RoleShipper: {
			{Pending, Delivering}:          {},
			{ReadyForPickup, Delivering}:   {},
			{ReadyForPickup, PickedUp}:     {},
			{PickedUp, Delivering}:         {},
			{Delivering, Delivered}:        {},
		},
	}
}

// Authorized reports whether role may request the from→to transition. Admin is
// unrestricted; the transition graph still applies separately.
func Authorized(role Role, from, to Status) bool {
	if role == RoleAdmin {
		return true
	}

	_, ok := roleTransitions()[role][transition{from, to}]
	return ok
}
