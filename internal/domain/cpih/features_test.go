package cpih

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costpulse/pkg/errors"
)

func sampleRecord() *IndexRecord {
	return &IndexRecord{
		Date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Values: map[Category]float64{
			CategoryFood:       4.1,
			CategoryHousing:    6.9,
			CategoryTransport:  1.2,
			CategoryHealth:     5.4,
			CategoryRecreation: 3.3,
			CategoryMisc:       2.8,
		},
		Headline: 3.9,
	}
}

func TestAssembleFeatures_OrderAndLength(t *testing.T) {
	record := sampleRecord()
	weights := NormalizeWeights(DefaultWeights())

	features, err := AssembleFeatures(record, weights)
	require.NoError(t, err)
	require.Len(t, features, FeatureCount)

	// First half: index values in canonical category order.
	want := []float64{4.1, 6.9, 1.2, 5.4, 3.3, 2.8}
	assert.Equal(t, want, features[:CategoryCount])

	// Second half: the normalized weights, same order, no permutation.
	for i, c := range Categories() {
		assert.Equal(t, weights[c], features[CategoryCount+i], "weight column for %s", c)
	}
}

func TestAssembleFeatures_MissingCategory(t *testing.T) {
	record := sampleRecord()
	delete(record.Values, CategoryHealth)

	_, err := AssembleFeatures(record, NormalizeWeights(DefaultWeights()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFeatureMismatch))
	assert.Contains(t, err.Error(), "Health")
}

func TestAssembleFeatures_ZeroWeights(t *testing.T) {
	features, err := AssembleFeatures(sampleRecord(), NormalizeWeights(nil))
	require.NoError(t, err)

	for i := CategoryCount; i < FeatureCount; i++ {
		assert.Zero(t, features[i])
	}
}
