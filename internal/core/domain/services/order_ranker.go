package services

import (
	"sort"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Candidate is an unclaimed order paired with its merchant's pickup location.
// The location is nil for merchants that were never geocoded.
type Candidate struct {
	Order            *order.Order
	MerchantLocation *kernel.GeoPoint
}

// RankedOrder is a dispatch listing entry. DistanceKm is nil when either the
// shipper's position or the merchant's location is unknown; the delivery fee
// then falls back to the base fee.
type RankedOrder struct {
	Order       *order.Order
	DistanceKm  *float64
	DeliveryFee decimal.Decimal
}

// OrderRanker is a domain service that ranks unclaimed orders for a shipper
// browsing the dispatch feed.
//
// Business rules:
//   - Orders with a known distance beyond the radius are dropped.
//   - Orders with an unknown distance are kept and listed after all
//     orders whose distance is known.
//   - Known-distance orders sort by ascending distance; ties and the
//     unknown-distance tail sort by creation time, oldest first.
//   - The quoted delivery fee is the greater of the base fee and the
//     per-kilometer fee times the distance.
type OrderRanker struct {
	radiusKm float64
	feeBase  decimal.Decimal
	feePerKm decimal.Decimal
}

// NewOrderRanker creates a ranker with the given search radius and fee
// schedule. A non-positive radius disables the radius filter.
func NewOrderRanker(radiusKm float64, feeBase, feePerKm decimal.Decimal) OrderRanker {
	return OrderRanker{
		radiusKm: radiusKm,
		feeBase:  feeBase,
		feePerKm: feePerKm,
	}
}

// WithRadius returns a copy of the ranker using a different search radius,
// keeping the fee schedule. Used when the shipper narrows or widens the
// search per request.
func (r OrderRanker) WithRadius(radiusKm float64) OrderRanker {
	r.radiusKm = radiusKm
	return r
}

// Rank orders the candidates for the given shipper position. A nil position
// means the shipper's whereabouts are unknown: no distances are computed, no
// candidates are dropped, and the feed sorts by creation time alone.
func (r OrderRanker) Rank(candidates []Candidate, shipperPosition *kernel.GeoPoint) ([]RankedOrder, error) {
	ranked := make([]RankedOrder, 0, len(candidates))

	for _, c := range candidates {
		if err := c.Order.Validate(); err != nil {
			return nil, err
		}

		distance, err := r.distanceTo(c, shipperPosition)
		if err != nil {
			return nil, err
		}

		if distance != nil && r.radiusKm > 0 && *distance > r.radiusKm {
			continue
		}

		ranked = append(ranked, RankedOrder{
			Order:       c.Order,
			DistanceKm:  distance,
			DeliveryFee: r.Fee(distance),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		switch {
		case a.DistanceKm != nil && b.DistanceKm == nil:
			return true
		case a.DistanceKm == nil && b.DistanceKm != nil:
			return false
		case a.DistanceKm != nil && b.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm:
			return *a.DistanceKm < *b.DistanceKm
		default:
			return a.Order.CreatedAt().Before(b.Order.CreatedAt())
		}
	})

	return ranked, nil
}

// Fee quotes the delivery fee for a pickup at the given distance. An unknown
// distance quotes the base fee.
func (r OrderRanker) Fee(distanceKm *float64) decimal.Decimal {
	if distanceKm == nil {
		return r.feeBase
	}

	byDistance := r.feePerKm.Mul(decimal.NewFromFloat(*distanceKm))
	if byDistance.GreaterThan(r.feeBase) {
		return byDistance
	}

	return r.feeBase
}

func (r OrderRanker) distanceTo(c Candidate, shipperPosition *kernel.GeoPoint) (*float64, error) {
	if shipperPosition == nil || c.MerchantLocation == nil {
		return nil, nil
	}

	distance, err := shipperPosition.DistanceKm(*c.MerchantLocation)
	if err != nil {
		return nil, err
	}

	return &distance, nil
}
