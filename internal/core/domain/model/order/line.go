package order

import (
	"errors"
	"fmt"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLineIsNotConstructed is returned when a zero-value Line is used.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")

// Line is one position of an order. It snapshots the menu item's name and unit
// price at checkout time; those snapshot values never change afterwards, even
// if the catalog item is edited or deleted. The menu item reference is weak:
// it may dangle once the item is gone, and read paths must render from the
// snapshot, never from the live item.
type Line struct {
	id kernel.UUID

	// menuItemID is nil when the referenced catalog item was deleted.
	menuItemID *kernel.UUID

	nameSnapshot  string
	priceSnapshot decimal.Decimal
	quantity      int
	lineTotal     decimal.Decimal

	isConstructed bool
}

// NewLine captures a snapshot of a menu item for an order being checked out.
// lineTotal is computed as price × quantity.
func NewLine(id, menuItemID kernel.UUID, name string, price decimal.Decimal, quantity int) (Line, error) {
	if err := errors.Join(id.Validate(), menuItemID.Validate()); err != nil {
		return Line{}, err
	}

	if name == "" {
		return Line{}, errs.NewValueIsRequiredError("name")
	}

	if price.IsNegative() {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price))
	}

	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	itemID := menuItemID
	return Line{
		id:            id,
		menuItemID:    &itemID,
		nameSnapshot:  name,
		priceSnapshot: price,
		quantity:      quantity,
		lineTotal:     price.Mul(decimal.NewFromInt(int64(quantity))),
		isConstructed: true,
	}, nil
}

// RestoreLine rebuilds a line from storage. menuItemID may be nil for lines
// whose catalog item has since been deleted.
func RestoreLine(
	id kernel.UUID,
	menuItemID *kernel.UUID,
	name string,
	price decimal.Decimal,
	quantity int,
	lineTotal decimal.Decimal,
) (Line, error) {
	if err := id.Validate(); err != nil {
		return Line{}, err
	}

	if menuItemID != nil {
		if err := menuItemID.Validate(); err != nil {
			return Line{}, err
		}
	}

	return Line{
		id:            id,
		menuItemID:    menuItemID,
		nameSnapshot:  name,
		priceSnapshot: price,
		quantity:      quantity,
		lineTotal:     lineTotal,
		isConstructed: true,
	}, nil
}

func (l Line) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l Line) ID() kernel.UUID {
	return l.id
}

// MenuItemID returns the weak reference to the catalog item, nil if dangling.
func (l Line) MenuItemID() *kernel.UUID {
	return l.menuItemID
}

func (l Line) Name() string {
	return l.nameSnapshot
}

func (l Line) Price() decimal.Decimal {
	return l.priceSnapshot
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) Total() decimal.Decimal {
	return l.lineTotal
}
