package queries_test

import (
	"testing"

	"mealdrop/internal/core/application/usecases/queries"
	"mealdrop/internal/core/domain/model/kernel"
	"mealdrop/internal/core/domain/model/order"
	"mealdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(kernel.NewUUID(), kernel.NewUUID(), order.RoleCustomer)
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
	})

	t.Run("empty order id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{}, kernel.NewUUID(), order.RoleCustomer)
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.NewUUID(), kernel.NewUUID(), order.Role("courier"))
		assert.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var query queries.GetOrderQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewListMyOrdersQuery(t *testing.T) {
	t.Run("valid query", func(t *testing.T) {
		query, err := queries.NewListMyOrdersQuery(kernel.NewUUID(), order.RoleMerchant)
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
	})

	t.Run("empty actor id", func(t *testing.T) {
		_, err := queries.NewListMyOrdersQuery(kernel.UUID{}, order.RoleMerchant)
		assert.Error(t, err)
	})
}

func TestNewListAvailableOrdersQuery(t *testing.T) {
	t.Run("without position", func(t *testing.T) {
		query, err := queries.NewListAvailableOrdersQuery(kernel.NewUUID(), nil, nil)
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.Nil(t, query.Position())
		assert.Nil(t, query.RadiusKm())
	})

	t.Run("with position", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(11.310897, 106.050406)
		require.NoError(t, err)

		query, err := queries.NewListAvailableOrdersQuery(kernel.NewUUID(), &point, nil)
		require.NoError(t, err)
		require.NotNil(t, query.Position())
	})

	t.Run("with radius", func(t *testing.T) {
		radius := 5.0
		query, err := queries.NewListAvailableOrdersQuery(kernel.NewUUID(), nil, &radius)
		require.NoError(t, err)
		require.NotNil(t, query.RadiusKm())
		assert.Equal(t, 5.0, *query.RadiusKm())
	})

	t.Run("non-positive radius", func(t *testing.T) {
		radius := 0.0
		_, err := queries.NewListAvailableOrdersQuery(kernel.NewUUID(), nil, &radius)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("empty shipper id", func(t *testing.T) {
		_, err := queries.NewListAvailableOrdersQuery(kernel.UUID{}, nil, nil)
		assert.Error(t, err)
	})
}
