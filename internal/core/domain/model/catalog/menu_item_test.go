package catalog_test

import (
	"testing"

	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuItem(t *testing.T) {
	item, err := catalog.NewMenuItem(
		kernel.NewUUID(), kernel.NewUUID(), "Pho Bo", decimal.NewFromInt(60000), 10)
	require.NoError(t, err)

	assert.Equal(t, "Pho Bo", item.Name())
	assert.Equal(t, 10, item.Stock())
	assert.True(t, item.IsAvailable())
}

func TestNewMenuItem_ZeroStockIsUnavailable(t *testing.T) {
	item, err := catalog.NewMenuItem(
		kernel.NewUUID(), kernel.NewUUID(), "Pho Bo", decimal.NewFromInt(60000), 0)
	require.NoError(t, err)

	assert.False(t, item.IsAvailable())
	assert.False(t, item.CanFulfill(1))
}

func TestNewMenuItem_Invalid(t *testing.T) {
	id := kernel.NewUUID()
	merchantID := kernel.NewUUID()

	tests := map[string]func() (catalog.MenuItem, error){
		"empty name": func() (catalog.MenuItem, error) {
			return catalog.NewMenuItem(id, merchantID, "", decimal.NewFromInt(1000), 1)
		},
		"negative price": func() (catalog.MenuItem, error) {
			return catalog.NewMenuItem(id, merchantID, "Pho Bo", decimal.NewFromInt(-1), 1)
		},
		"negative stock": func() (catalog.MenuItem, error) {
			return catalog.NewMenuItem(id, merchantID, "Pho Bo", decimal.NewFromInt(1000), -1)
		},
	}

	for name, create := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := create()
			require.Error(t, err)
		})
	}
}

func TestMenuItem_CanFulfill(t *testing.T) {
	item, err := catalog.NewMenuItem(
		kernel.NewUUID(), kernel.NewUUID(), "Pho Bo", decimal.NewFromInt(60000), 3)
	require.NoError(t, err)

	assert.True(t, item.CanFulfill(3))
	assert.False(t, item.CanFulfill(4))
}

func TestMenuItem_ZeroValueFailsValidation(t *testing.T) {
	var item catalog.MenuItem
	require.ErrorIs(t, item.Validate(), catalog.ErrMenuItemIsNotConstructed)
}
