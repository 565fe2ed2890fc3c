package catalog

import (
	"errors"
	"fmt"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem or RestoreMenuItem")

// MenuItem is a sellable catalog position. Stock is the number of units left;
// IsAvailable is derived from it and flips to false when stock hits zero.
type MenuItem struct {
	id          kernel.UUID
	merchantID  kernel.UUID
	name        string
	price       decimal.Decimal
	stock       int
	isAvailable bool

	isConstructed bool
}

func NewMenuItem(id, merchantID kernel.UUID, name string, price decimal.Decimal, stock int) (MenuItem, error) {
	if err := errors.Join(id.Validate(), merchantID.Validate()); err != nil {
		return MenuItem{}, err
	}

	if name == "" {
		return MenuItem{}, errs.NewValueIsRequiredError("name")
	}

	if price.IsNegative() {
		return MenuItem{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price))
	}

	if stock < 0 {
		return MenuItem{}, errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}

	return MenuItem{
		id:            id,
		merchantID:    merchantID,
		name:          name,
		price:         price,
		stock:         stock,
		isAvailable:   stock > 0,
		isConstructed: true,
	}, nil
}

func RestoreMenuItem(id, merchantID kernel.UUID, name string, price decimal.Decimal, stock int, isAvailable bool) MenuItem {
	return MenuItem{
		id:            id,
		merchantID:    merchantID,
		name:          name,
		price:         price,
		stock:         stock,
		isAvailable:   isAvailable,
		isConstructed: true,
	}
}

func (m MenuItem) Validate() error {
	if !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}
	return nil
}

func (m MenuItem) ID() kernel.UUID {
	return m.id
}

func (m MenuItem) MerchantID() kernel.UUID {
	return m.merchantID
}

func (m MenuItem) Name() string {
	return m.name
}

func (m MenuItem) Price() decimal.Decimal {
	return m.price
}

func (m MenuItem) Stock() int {
	return m.stock
}

func (m MenuItem) IsAvailable() bool {
	return m.isAvailable
}

// CanFulfill reports whether the item can currently serve the requested
// quantity. The authoritative check is the atomic reserve's conditional
// decrement; this predicate classifies a failed decrement, telling a genuine
// shortfall apart from a lost race.
func (m MenuItem) CanFulfill(quantity int) bool {
	return m.isAvailable && m.stock >= quantity
}
