package cpih

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeights_SumsToOne(t *testing.T) {
	tests := []struct {
		name string
		raw  WeightMap
	}{
		{
			name: "default budget",
			raw:  DefaultWeights(),
		},
		{
			name: "single category",
			raw:  WeightMap{CategoryFood: 42},
		},
		{
			name: "tiny values",
			raw:  WeightMap{CategoryFood: 0.001, CategoryHousing: 0.002},
		},
		{
			name: "large unnormalized values",
			raw:  WeightMap{CategoryFood: 900, CategoryHousing: 2500, CategoryMisc: 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeWeights(tt.raw)

			require.Len(t, got, CategoryCount)
			sum := 0.0
			for _, c := range Categories() {
				v, ok := got[c]
				require.True(t, ok, "missing category %s", c)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
				sum += v
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestNormalizeWeights_ExactShares(t *testing.T) {
	raw := WeightMap{
		CategoryHousing:    35,
		CategoryFood:       25,
		CategoryTransport:  15,
		CategoryHealth:     5,
		CategoryRecreation: 8,
		CategoryMisc:       12,
	}

	got := NormalizeWeights(raw)

	assert.Equal(t, 0.35, got[CategoryHousing])
	assert.Equal(t, 0.25, got[CategoryFood])
	assert.Equal(t, 0.15, got[CategoryTransport])
	assert.Equal(t, 0.05, got[CategoryHealth])
	assert.Equal(t, 0.08, got[CategoryRecreation])
	assert.Equal(t, 0.12, got[CategoryMisc])
}

func TestNormalizeWeights_AllZeroStaysZero(t *testing.T) {
	// Divisor falls back to 1, so the result is the all-zero map, not an
	// equal 1/6 split. The models were trained with this behavior.
	tests := []struct {
		name string
		raw  WeightMap
	}{
		{"explicit zeros", WeightMap{
			CategoryFood: 0, CategoryHousing: 0, CategoryTransport: 0,
			CategoryHealth: 0, CategoryRecreation: 0, CategoryMisc: 0,
		}},
		{"empty map", WeightMap{}},
		{"nil map", nil},
		{"all negative", WeightMap{CategoryFood: -5, CategoryHousing: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeWeights(tt.raw)
			require.Len(t, got, CategoryCount)
			for c, v := range got {
				assert.Zero(t, v, "category %s", c)
			}
		})
	}
}

func TestNormalizeWeights_ClampsNegativesAndNaN(t *testing.T) {
	raw := WeightMap{
		CategoryFood:    30,
		CategoryHousing: -20,
		CategoryHealth:  math.NaN(),
		CategoryMisc:    10,
	}

	got := NormalizeWeights(raw)

	assert.Equal(t, 0.75, got[CategoryFood])
	assert.Equal(t, 0.0, got[CategoryHousing])
	assert.Equal(t, 0.0, got[CategoryHealth])
	assert.Equal(t, 0.25, got[CategoryMisc])
}

func TestNormalizeWeights_IgnoresUnknownCategories(t *testing.T) {
	raw := WeightMap{
		CategoryFood:      50,
		CategoryHousing:   50,
		Category("Pets"):  999,
		Category("Other"): -3,
	}

	got := NormalizeWeights(raw)

	require.Len(t, got, CategoryCount)
	assert.Equal(t, 0.5, got[CategoryFood])
	assert.Equal(t, 0.5, got[CategoryHousing])
	_, hasUnknown := got[Category("Pets")]
	assert.False(t, hasUnknown)
}

func TestNormalizeWeights_Idempotent(t *testing.T) {
	once := NormalizeWeights(DefaultWeights())
	twice := NormalizeWeights(once)

	for _, c := range Categories() {
		assert.InDelta(t, once[c], twice[c], 1e-12, "category %s", c)
	}
}

func TestNormalizeWeights_DoesNotMutateInput(t *testing.T) {
	raw := WeightMap{CategoryFood: -7, CategoryHousing: 3}
	NormalizeWeights(raw)

	assert.Equal(t, -7.0, raw[CategoryFood])
	assert.Equal(t, 3.0, raw[CategoryHousing])
}
