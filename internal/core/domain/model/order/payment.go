package order

import (
	"fmt"

	"mealdrop/internal/pkg/errs"
)

// PaymentStatus tracks payment as a flag only; capture and refund bookkeeping
// live with the payment provider.
type PaymentStatus string

const (
	Unpaid   PaymentStatus = "UNPAID"
	Paid     PaymentStatus = "PAID"
	Refunded PaymentStatus = "REFUNDED"
)

func (p PaymentStatus) Validate() error {
	switch p {
	case Unpaid, Paid, Refunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a valid payment status", string(p)))
	}
}

func (p PaymentStatus) String() string {
	return string(p)
}
