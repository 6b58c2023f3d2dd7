package isee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyCoefficientTable(t *testing.T) {
	assert.Equal(t, 1.0, FamilyCoefficient(1))
	assert.Equal(t, 1.57, FamilyCoefficient(2))
	assert.Equal(t, 2.04, FamilyCoefficient(3))
	assert.Equal(t, 2.46, FamilyCoefficient(4))
	assert.Equal(t, 2.85, FamilyCoefficient(5))
}

func TestFamilyCoefficientExtrapolation(t *testing.T) {
	assert.InDelta(t, 3.20, FamilyCoefficient(6), 1e-9)
	assert.InDelta(t, 3.55, FamilyCoefficient(7), 1e-9)
	assert.InDelta(t, 4.60, FamilyCoefficient(10), 1e-9)
}

func TestCalculateMediumTier(t *testing.T) {
	res, err := Calculate(20000, 0, 2)
	require.NoError(t, err)

	assert.InDelta(t, 20000/1.57, res.ISEE, 1e-6)
	assert.InDelta(t, 20000/1.57/Threshold*100, res.Percentage, 1e-6)
	assert.Equal(t, StatusMedium, res.Status)
}

func TestCalculatePropertyContribution(t *testing.T) {
	// 100 sqm values at 100*500*0.2 = 10000 EUR of countable income.
	withProperty, err := Calculate(10000, 100, 1)
	require.NoError(t, err)
	without, err := Calculate(20000, 0, 1)
	require.NoError(t, err)

	assert.InDelta(t, without.ISEE, withProperty.ISEE, 1e-9)
}

func TestCalculateLargerFamilyLowersISEE(t *testing.T) {
	small, err := Calculate(30000, 50, 2)
	require.NoError(t, err)
	large, err := Calculate(30000, 50, 5)
	require.NoError(t, err)

	assert.Less(t, large.ISEE, small.ISEE)
}

func TestStatusForBoundaries(t *testing.T) {
	tests := []struct {
		percentage float64
		want       Status
	}{
		{0, StatusFull},
		{55, StatusFull},
		{55.01, StatusMedium},
		{71.5, StatusMedium},
		{71.51, StatusPartial},
		{100, StatusPartial},
		{100.01, StatusNone},
		{250, StatusNone},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, StatusFor(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestCalculateZeroIncome(t *testing.T) {
	res, err := Calculate(0, 0, 4)
	require.NoError(t, err)
	assert.Zero(t, res.ISEE)
	assert.Equal(t, StatusFull, res.Status)
}
