package catalog_test

import (
	"testing"

	"mealdrop/internal/core/domain/model/catalog"
	"mealdrop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMerchant(t *testing.T) {
	location, err := kernel.NewGeoPoint(11.310897, 106.050406)
	require.NoError(t, err)

	merchant, err := catalog.NewMerchant(
		kernel.NewUUID(), "Quan Com Ba Muoi", "30 Tran Hung Dao", &location)
	require.NoError(t, err)

	assert.Equal(t, "Quan Com Ba Muoi", merchant.Name())
	assert.True(t, merchant.IsActive())
	require.NotNil(t, merchant.Location())
	assert.InDelta(t, 11.310897, merchant.Location().Latitude(), 1e-9)
}

func TestNewMerchant_WithoutLocation(t *testing.T) {
	merchant, err := catalog.NewMerchant(kernel.NewUUID(), "Quan Com Ba Muoi", "", nil)
	require.NoError(t, err)

	assert.Nil(t, merchant.Location())
}

func TestNewMerchant_EmptyName(t *testing.T) {
	_, err := catalog.NewMerchant(kernel.NewUUID(), "", "", nil)
	require.Error(t, err)
}

func TestNewMerchant_InvalidLocation(t *testing.T) {
	var zero kernel.GeoPoint
	_, err := catalog.NewMerchant(kernel.NewUUID(), "Quan Com Ba Muoi", "", &zero)
	require.Error(t, err)
}

func TestMerchant_ZeroValueFailsValidation(t *testing.T) {
	var m catalog.Merchant
	require.ErrorIs(t, m.Validate(), catalog.ErrMerchantIsNotConstructed)
}
