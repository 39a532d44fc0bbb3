package cpih

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// WeightMap maps a budget category to a raw, possibly unnormalized user
// input (e.g. a 0-100 slider value). Missing categories count as zero.
type WeightMap map[Category]float64

// DefaultWeights returns the suggested starting budget breakdown shown to
// new users (percent of household spend, sums to 100).
func DefaultWeights() WeightMap {
	return WeightMap{
		CategoryHousing:    35,
		CategoryFood:       25,
		CategoryTransport:  15,
		CategoryHealth:     5,
		CategoryRecreation: 8,
		CategoryMisc:       12,
	}
}

// NormalizeWeights converts arbitrary non-negative raw inputs into budget
// shares on the probability simplex: each value clamped at zero, divided by
// the clamped total. Output always has exactly one entry per fixed category.
//
// When every input is zero or negative the divisor falls back to 1, so the
// result is the all-zero map rather than an equal split. That mirrors how
// the models were trained and must not be "fixed" here: an equal-split
// fallback would change model input semantics.
//
// Never fails: malformed entries (NaN, negatives, unknown or missing keys)
// degrade to zero.
func NormalizeWeights(raw WeightMap) WeightMap {
	clamped := make([]float64, CategoryCount)
	for i, c := range categories {
		v := raw[c]
		if math.IsNaN(v) || v < 0 {
			v = 0
		}
		clamped[i] = v
	}

	total := floats.Sum(clamped)
	if total == 0 {
		total = 1
	}
	floats.Scale(1/total, clamped)

	out := make(WeightMap, CategoryCount)
	for i, c := range categories {
		out[c] = clamped[i]
	}
	return out
}
