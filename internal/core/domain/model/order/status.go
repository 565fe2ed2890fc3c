package order

import (
	"fmt"

	"mealdrop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. Values are persisted as
// strings, so the constants double as the storage representation.
//
// State transitions:
//
//	PENDING ──┬──> CONFIRMED ──> READY_FOR_PICKUP ──┬──> PICKED_UP ──> DELIVERING ──> DELIVERED
//	          │        │                │           └───────────────────^
//	          ├────────┼────────────────┴──> CANCELED
//	          └─────────────────────────────────────────> DELIVERING
//	     (a shipper may claim straight from PENDING, before merchant confirmation)
//
// DELIVERED and CANCELED are terminal.
type Status string

const (
	// Pending is the initial status set at checkout, awaiting the merchant.
	Pending Status = "PENDING"

	// Confirmed means the merchant accepted the order and is preparing it.
	Confirmed Status = "CONFIRMED"

	// ReadyForPickup means the food is ready and waiting for a shipper.
	ReadyForPickup Status = "READY_FOR_PICKUP"

	// PickedUp means the assigned shipper has collected the order.
	PickedUp Status = "PICKED_UP"

	// Delivering means a shipper has claimed the order and is on the way.
	Delivering Status = "DELIVERING"

	// Delivered is the terminal success state.
	Delivered Status = "DELIVERED"

	// Canceled is the terminal failure state. Canceled orders are retained
	// for audit, never deleted.
	Canceled Status = "CANCELED"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:        {},
		Confirmed:      {},
		ReadyForPickup: {},
		PickedUp:       {},
		Delivering:     {},
		Delivered:      {},
		Canceled:       {},
	}
}

// legalTransitions is the transition graph of the state machine. Authorization
// (which role may request which transition) lives in the role table, not here.
func legalTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Confirmed, Delivering, Canceled},
		Confirmed:      {ReadyForPickup, Canceled},
		ReadyForPickup: {PickedUp, Delivering, Canceled},
		PickedUp:       {Delivering},
		Delivering:     {Delivered},
	}
}

// Validate checks the Status holds one of the known values. Used when
// reconstructing orders from storage or parsing client input.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// CanTransitionTo reports whether the graph permits moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range legalTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the new status, or InvalidStateTransitionError when the
// graph does not permit the move.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidStateTransitionError(s.String(), target.String())
	}

	return target, nil
}

// IsClaimable reports whether a shipper may claim an order in this status.
// Claims are allowed from PENDING as well as READY_FOR_PICKUP.
func (s Status) IsClaimable() bool {
	return s == Pending || s == ReadyForPickup
}

// ReleasesStockOnCancel reports whether canceling from this status must credit
// the reserved stock back. Stock is reserved at checkout, so any cancel before
// the food leaves the store releases it.
func (s Status) ReleasesStockOnCancel() bool {
	return s == Pending || s == Confirmed
}
