package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden is the sentinel for role or ownership checks that failed.
	ErrForbidden = errors.New("forbidden")

	// ErrInsufficientStock is the sentinel for reservations that exceed the
	// available stock of an item.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidStateTransition is the sentinel for order status changes that
	// are not legal from the current status.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrConflict is the sentinel for a claim that lost the race to another
	// shipper. Distinct from ErrInvalidStateTransition so callers know to
	// re-list and pick a different order rather than retry the same one.
	ErrConflict = errors.New("conflict")
)

// ForbiddenError reports an actor attempting an operation outside their role
// or on a resource they do not own.
type ForbiddenError struct {
	Role   string
	Action string
}

func NewForbiddenError(role, action string) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: role %s may not %s", ErrForbidden, e.Role, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InsufficientStockError carries the item, the requested quantity, and what was
// actually available so the checkout failure can report a precise message.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested int
	Available int
}

func NewInsufficientStockError(itemID, itemName string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ItemID:    itemID,
		ItemName:  itemName,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: item %s (%s): requested %d, available %d",
		ErrInsufficientStock, sanitize(e.ItemName), e.ItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InvalidStateTransitionError reports an order status change that the state
// machine does not permit from the current status.
type InvalidStateTransitionError struct {
	From string
	To   string
}

func NewInvalidStateTransitionError(from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidStateTransition, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// ConflictError reports a compare-and-swap claim that found the order already
// taken by another shipper.
type ConflictError struct {
	OrderID string
}

func NewConflictError(orderID string) *ConflictError {
	return &ConflictError{OrderID: orderID}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: order %s is already claimed", ErrConflict, e.OrderID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
