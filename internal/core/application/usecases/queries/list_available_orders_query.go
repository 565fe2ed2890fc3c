package queries

import (
	"errors"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/pkg/errs"
	"mealdrop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// ListAvailableOrdersQuery retrieves the dispatch feed for a shipper:
// unclaimed orders ranked by distance from the shipper to the merchant.
//
// The shipper's position resolves in this priority:
//  1. the position supplied with the query, if any
//  2. the shipper's last reported position, if it is still fresh
//  3. none, in which case the feed sorts by age and quotes base fees
type ListAvailableOrdersQuery struct {
	shipperID kernel.UUID
	position  *kernel.GeoPoint
	radiusKm  *float64

	guard guard.ConstructorGuard
}

// NewListAvailableOrdersQuery creates a dispatch feed query. position may be
// nil when the shipper's device did not attach coordinates; radiusKm may be
// nil to search within the configured default radius.
func NewListAvailableOrdersQuery(
	shipperID kernel.UUID,
	position *kernel.GeoPoint,
	radiusKm *float64,
) (ListAvailableOrdersQuery, error) {
	if err := shipperID.Validate(); err != nil {
		return ListAvailableOrdersQuery{}, err
	}

	if position != nil {
		if err := position.Validate(); err != nil {
			return ListAvailableOrdersQuery{}, err
		}
	}

	if radiusKm != nil && *radiusKm <= 0 {
		return ListAvailableOrdersQuery{},
			errs.NewValueIsOutOfRangeError("radiusKm", *radiusKm, 0, "+inf")
	}

	return ListAvailableOrdersQuery{
		shipperID: shipperID,
		position:  position,
		radiusKm:  radiusKm,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) ShipperID() kernel.UUID {
	return q.shipperID
}

func (q ListAvailableOrdersQuery) Position() *kernel.GeoPoint {
	return q.position
}

func (q ListAvailableOrdersQuery) RadiusKm() *float64 {
	return q.radiusKm
}

// AvailableOrderResponse is one dispatch feed entry. DistanceKm is nil when
// no usable shipper position or merchant location was available.
type AvailableOrderResponse struct {
	ID              kernel.UUID     `json:"id"`
	MerchantName    string          `json:"merchant_name"`
	MerchantAddress string          `json:"merchant_address"`
	DeliveryAddress string          `json:"delivery_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	DistanceKm      *float64        `json:"distance_km"`
	CreatedAt       time.Time       `json:"created_at"`
}
