package order

import (
	"errors"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the customer who placed the order
	customerID kernel.UUID

	// merchantID is the store preparing the order
	merchantID kernel.UUID

	// shipperID is the assigned shipper (nil until claimed)
	shipperID *kernel.UUID

	status        Status
	paymentStatus PaymentStatus

	// lines are the immutable item snapshots taken at checkout
	lines []Line

	// totalAmount is the sum of line totals
	totalAmount decimal.Decimal

	deliveryAddress string
	note            string

	// stockReleased records that the cancel path already credited the
	// reserved stock back, so a second cancel can never double-credit
	stockReleased bool

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates an order in PENDING/UNPAID with no lines and a zero total.
// Lines are added one by one as the checkout reserves stock for them.
func NewOrder(id, customerID, merchantID kernel.UUID, deliveryAddress, note string, now time.Time) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), merchantID.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		customerID:      customerID,
		merchantID:      merchantID,
		status:          Pending,
		paymentStatus:   Unpaid,
		totalAmount:     decimal.Zero,
		deliveryAddress: deliveryAddress,
		note:            note,
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

// RestoreOrder rebuilds an aggregate from storage without re-running the
// checkout-time invariants.
func RestoreOrder(
	id, customerID, merchantID kernel.UUID,
	shipperID *kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	lines []Line,
	totalAmount decimal.Decimal,
	deliveryAddress, note string,
	stockReleased bool,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		merchantID.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if shipperID != nil {
		if err := shipperID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:              id,
		customerID:      customerID,
		merchantID:      merchantID,
		shipperID:       shipperID,
		status:          status,
		paymentStatus:   paymentStatus,
		lines:           lines,
		totalAmount:     totalAmount,
		deliveryAddress: deliveryAddress,
		note:            note,
		stockReleased:   stockReleased,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) CustomerID() kernel.UUID      { return o.customerID }
func (o *Order) MerchantID() kernel.UUID      { return o.merchantID }
func (o *Order) ShipperID() *kernel.UUID      { return o.shipperID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Lines() []Line                { return o.lines }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) DeliveryAddress() string      { return o.deliveryAddress }
func (o *Order) Note() string                 { return o.note }
func (o *Order) StockReleased() bool          { return o.stockReleased }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// AddLine appends a checkout snapshot and accumulates the running total.
// Lines can only be added while the order is still PENDING and unclaimed.
func (o *Order) AddLine(line Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	if o.status != Pending {
		return errs.NewInvalidStateTransitionError(o.status.String(), "add line")
	}

	o.lines = append(o.lines, line)
	o.totalAmount = o.totalAmount.Add(line.Total())
	return nil
}

// MarkPaid flips the payment flag after the provider confirms capture.
func (o *Order) MarkPaid() error {
	if o.paymentStatus != Unpaid {
		return errs.NewValueIsInvalidError("payment status")
	}
	o.paymentStatus = Paid
	return nil
}

// Transition applies a role-checked status change. Claims and cancels have
// dedicated methods because they carry extra effects; this method rejects
// attempts to acquire an order (DELIVERING from a claimable status) or to
// reach CANCELED directly. A PICKED_UP order moves on to DELIVERING through
// here, since the shipper assignment already happened or never will.
func (o *Order) Transition(role Role, target Status) error {
	if target == Delivering && o.status.IsClaimable() {
		return errs.NewValueIsInvalidError("claim must be used to reach DELIVERING")
	}
	if target == Canceled {
		return errs.NewValueIsInvalidError("cancel must be used to reach CANCELED")
	}

	return o.applyTransition(role, target)
}

// Claim assigns the shipper and advances the order to DELIVERING. A claim is
// only valid while the order is claimable and unassigned; the persistence
// layer enforces the same condition as a compare-and-swap so that of two
// racing shippers exactly one wins.
func (o *Order) Claim(role Role, shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}

	if o.shipperID != nil {
		return errs.NewConflictError(o.id.String())
	}

	if err := o.applyTransition(role, Delivering); err != nil {
		return err
	}

	o.shipperID = &shipperID
	return nil
}

// CompleteDelivery moves a DELIVERING order to DELIVERED on behalf of the
// assigned shipper. Any other shipper is rejected.
func (o *Order) CompleteDelivery(role Role, shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}

	if role != RoleAdmin && (o.shipperID == nil || !o.shipperID.IsEqual(shipperID)) {
		return errs.NewForbiddenError(role.String(), "complete an order assigned to another shipper")
	}

	return o.applyTransition(role, Delivered)
}

// Cancel moves the order to CANCELED. It returns the lines whose stock must
// be credited back; the slice is nil when nothing needs releasing (either the
// stock already left with the shipper, or a previous cancel released it).
// A PAID order is flipped to REFUNDED. Canceling an already CANCELED order is
// an InvalidStateTransition, never a second release.
func (o *Order) Cancel(role Role) ([]Line, error) {
	releases := o.status.ReleasesStockOnCancel() && !o.stockReleased

	if err := o.applyTransition(role, Canceled); err != nil {
		return nil, err
	}

	if o.paymentStatus == Paid {
		o.paymentStatus = Refunded
	}

	// Settled either way: the stock was credited back here, or it already
	// left with the shipper and there is nothing to credit.
	o.stockReleased = true

	if !releases {
		return nil, nil
	}

	return o.lines, nil
}

// ReleaseRemainingStock marks a CANCELED order's stock as credited back and
// returns the lines to credit. Orders canceled outside the transactional
// cancel path (manual status edits, imports) end up CANCELED without the
// released flag; the reconciliation job sweeps them through here. Returns nil
// when there is nothing left to release.
func (o *Order) ReleaseRemainingStock() ([]Line, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.status != Canceled || o.stockReleased {
		return nil, nil
	}

	o.stockReleased = true
	return o.lines, nil
}

// Refund resolves a merchant-initiated refund. The original system accepts a
// partial amount but always resolves to the same binary REFUNDED flag; no
// partial amount is persisted.
func (o *Order) Refund() error {
	if o.paymentStatus != Paid {
		return errs.NewValueIsInvalidError("only paid orders can be refunded")
	}
	o.paymentStatus = Refunded
	return nil
}

func (o *Order) applyTransition(role Role, target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := role.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if !Authorized(role, o.status, target) {
		return errs.NewForbiddenError(role.String(),
			"transition "+o.status.String()+" -> "+target.String())
	}

	o.status = newStatus
	return nil
}
