package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestReconcilePricingDerivesTotalFromUnit(t *testing.T) {
	unit, total := ReconcilePricing(10, floatPtr(2.50), nil)

	require.NotNil(t, unit)
	require.NotNil(t, total)
	assert.Equal(t, 2.50, *unit)
	assert.Equal(t, 25.00, *total)
}

func TestReconcilePricingDerivesUnitFromTotal(t *testing.T) {
	unit, total := ReconcilePricing(10, nil, floatPtr(30))

	require.NotNil(t, unit)
	require.NotNil(t, total)
	assert.Equal(t, 3.00, *unit)
	assert.Equal(t, 30.00, *total)
}

func TestReconcilePricingNeverOverwritesUserValues(t *testing.T) {
	// Both entered by the user: keep both even though they disagree.
	unit, total := ReconcilePricing(10, floatPtr(2), floatPtr(99))

	require.NotNil(t, unit)
	require.NotNil(t, total)
	assert.Equal(t, 2.00, *unit)
	assert.Equal(t, 99.00, *total)
}

func TestReconcilePricingNothingProvided(t *testing.T) {
	unit, total := ReconcilePricing(10, nil, nil)

	assert.Nil(t, unit)
	assert.Nil(t, total)
}

func TestReconcilePricingRoundsToTwoDecimals(t *testing.T) {
	unit, _ := ReconcilePricing(3, nil, floatPtr(10))
	require.NotNil(t, unit)
	assert.Equal(t, 3.33, *unit)

	_, total := ReconcilePricing(3, floatPtr(0.333), nil)
	require.NotNil(t, total)
	assert.Equal(t, 1.00, *total)
}
