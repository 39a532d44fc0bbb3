package cpih

import (
	"costpulse/pkg/errors"
)

// AssembleFeatures builds the model input vector from the latest index
// record and a normalized weight map: the six per-category index values in
// canonical order, then the six normalized weights in the same order.
//
// Column order must match the order the artifacts were trained on. Any
// reordering silently produces wrong predictions, so both halves iterate
// the same canonical category slice.
func AssembleFeatures(record *IndexRecord, weights WeightMap) ([]float64, error) {
	features := make([]float64, 0, FeatureCount)

	for _, c := range categories {
		v, ok := record.Value(c)
		if !ok {
			return nil, errors.Wrapf(errors.ErrFeatureMismatch,
				"index record %s lacks category %s", record.MonthLabel(), c)
		}
		features = append(features, v)
	}
	for _, c := range categories {
		features = append(features, weights[c])
	}

	return features, nil
}
