package queries

import (
	"errors"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListMyOrdersQueryIsNotConstructed = errors.New(
	"ListMyOrdersQuery must be created via NewListMyOrdersQuery constructor",
)

// ListMyOrdersQuery retrieves the actor's side of the order book: a
// customer's placed orders, a merchant's incoming orders, or the orders a
// shipper currently has out for delivery.
type ListMyOrdersQuery struct {
	actorID kernel.UUID
	role    order.Role

	guard guard.ConstructorGuard
}

// NewListMyOrdersQuery creates an order listing query for the actor.
func NewListMyOrdersQuery(actorID kernel.UUID, role order.Role) (ListMyOrdersQuery, error) {
	if err := errors.Join(actorID.Validate(), role.Validate()); err != nil {
		return ListMyOrdersQuery{}, err
	}

	return ListMyOrdersQuery{
		actorID: actorID,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListMyOrdersQueryIsNotConstructed)
}

func (q ListMyOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

func (q ListMyOrdersQuery) Role() order.Role {
	return q.role
}

// OrderSummaryResponse is one row of an order listing.
type OrderSummaryResponse struct {
	ID              kernel.UUID     `json:"id"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryAddress string          `json:"delivery_address"`
	CreatedAt       time.Time       `json:"created_at"`
}
