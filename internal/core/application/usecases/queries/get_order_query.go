// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines, scoped to the requesting
// actor. Customers see their own orders, merchants their incoming orders,
// shippers the orders assigned to them; admins see everything. An order
// outside the actor's scope is reported as not found.
type GetOrderQuery struct {
	orderID kernel.UUID
	actorID kernel.UUID
	role    order.Role

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a scoped order lookup.
func NewGetOrderQuery(orderID, actorID kernel.UUID, role order.Role) (GetOrderQuery, error) {
	if err := errors.Join(
		orderID.Validate(), actorID.Validate(), role.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actorID: actorID,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) ActorID() kernel.UUID {
	return q.actorID
}

func (q GetOrderQuery) Role() order.Role {
	return q.role
}

// OrderLineResponse is one line of an order read model. Name and price are
// the checkout-time snapshots, not the live catalog values.
type OrderLineResponse struct {
	ID        kernel.UUID     `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// GetOrderQueryResponse is the full order read model. The merchant name and
// address are joined in for display; the shipper is an identifier only until
// a shipper profile exists to join against.
type GetOrderQueryResponse struct {
	ID              kernel.UUID         `json:"id"`
	CustomerID      kernel.UUID         `json:"customer_id"`
	MerchantID      kernel.UUID         `json:"merchant_id"`
	MerchantName    string              `json:"merchant_name"`
	MerchantAddress string              `json:"merchant_address"`
	ShipperID       *kernel.UUID        `json:"shipper_id"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	Lines           []OrderLineResponse `json:"lines"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	DeliveryAddress string              `json:"delivery_address"`
	Note            string              `json:"note"`
	CreatedAt       time.Time           `json:"created_at"`
}
