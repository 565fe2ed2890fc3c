package services_test

import (
	"testing"
	"time"

	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testFeeBase  = decimal.NewFromInt(20000)
	testFeePerKm = decimal.NewFromInt(5000)
)

func newTestOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Nguyen Trai", "", createdAt)
	require.NoError(t, err)

	return o
}

func mustPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()

	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)

	return p
}

func TestOrderRanker_Rank(t *testing.T) {
	now := time.Now()
	shipperAt := mustPoint(t, 11.310897, 106.050406)

	nearLocation := mustPoint(t, 11.332101, 106.076425)  // ~3.4 km
	farLocation := mustPoint(t, 10.776900, 106.700900)   // ~75 km, outside radius
	sameLocation := mustPoint(t, 11.310897, 106.050406)  // 0 km

	ranker := services.NewOrderRanker(20, testFeeBase, testFeePerKm)

	t.Run("sorts by distance, drops beyond radius, unknown goes last", func(t *testing.T) {
		near := newTestOrder(t, now)
		far := newTestOrder(t, now)
		same := newTestOrder(t, now)
		unlocated := newTestOrder(t, now)

		ranked, err := ranker.Rank([]services.Candidate{
			{Order: near, MerchantLocation: &nearLocation},
			{Order: far, MerchantLocation: &farLocation},
			{Order: unlocated, MerchantLocation: nil},
			{Order: same, MerchantLocation: &sameLocation},
		}, &shipperAt)
		require.NoError(t, err)

		require.Len(t, ranked, 3)
		assert.True(t, ranked[0].Order.IsEqual(same))
		assert.True(t, ranked[1].Order.IsEqual(near))
		assert.True(t, ranked[2].Order.IsEqual(unlocated))

		require.NotNil(t, ranked[1].DistanceKm)
		assert.InDelta(t, 3.4, *ranked[1].DistanceKm, 0.3)
		assert.Nil(t, ranked[2].DistanceKm)
	})

	t.Run("creation time breaks ties", func(t *testing.T) {
		older := newTestOrder(t, now.Add(-time.Hour))
		newer := newTestOrder(t, now)

		ranked, err := ranker.Rank([]services.Candidate{
			{Order: newer, MerchantLocation: &nearLocation},
			{Order: older, MerchantLocation: &nearLocation},
		}, &shipperAt)
		require.NoError(t, err)

		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].Order.IsEqual(older))
		assert.True(t, ranked[1].Order.IsEqual(newer))
	})

	t.Run("nil shipper position keeps everything, sorted by age", func(t *testing.T) {
		older := newTestOrder(t, now.Add(-time.Hour))
		newer := newTestOrder(t, now)

		ranked, err := ranker.Rank([]services.Candidate{
			{Order: newer, MerchantLocation: &farLocation},
			{Order: older, MerchantLocation: &nearLocation},
		}, nil)
		require.NoError(t, err)

		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].Order.IsEqual(older))
		assert.Nil(t, ranked[0].DistanceKm)
		assert.True(t, ranked[0].DeliveryFee.Equal(testFeeBase))
	})

	t.Run("empty candidates yield empty feed", func(t *testing.T) {
		ranked, err := ranker.Rank(nil, &shipperAt)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("invalid order fails ranking", func(t *testing.T) {
		var zero order.Order
		_, err := ranker.Rank([]services.Candidate{{Order: &zero}}, &shipperAt)
		require.Error(t, err)
	})
}

func TestOrderRanker_WithRadius(t *testing.T) {
	shipperAt := mustPoint(t, 11.310897, 106.050406)
	nearLocation := mustPoint(t, 11.332101, 106.076425) // ~3.4 km

	ranker := services.NewOrderRanker(20, testFeeBase, testFeePerKm)
	near := newTestOrder(t, time.Now())
	candidates := []services.Candidate{{Order: near, MerchantLocation: &nearLocation}}

	ranked, err := ranker.Rank(candidates, &shipperAt)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	ranked, err = ranker.WithRadius(2).Rank(candidates, &shipperAt)
	require.NoError(t, err)
	assert.Empty(t, ranked, "narrowed radius drops the candidate")

	ranked, err = ranker.Rank(candidates, &shipperAt)
	require.NoError(t, err)
	assert.Len(t, ranked, 1, "the original ranker keeps its radius")
}

func TestOrderRanker_Fee(t *testing.T) {
	ranker := services.NewOrderRanker(20, testFeeBase, testFeePerKm)

	t.Run("short haul quotes the base fee", func(t *testing.T) {
		distance := 2.0 // 2 km × 5000 = 10000 < 20000
		assert.True(t, ranker.Fee(&distance).Equal(testFeeBase))
	})

	t.Run("long haul quotes per kilometer", func(t *testing.T) {
		distance := 10.0 // 10 km × 5000 = 50000
		assert.True(t, ranker.Fee(&distance).Equal(decimal.NewFromInt(50000)))
	})

	t.Run("unknown distance quotes the base fee", func(t *testing.T) {
		assert.True(t, ranker.Fee(nil).Equal(testFeeBase))
	})
}
