package risk

import (
	"math"

	"costpulse/internal/domain/cpih"
	"costpulse/pkg/errors"
)

// Classifier produces the probability of the positive (high risk) class for
// a single feature row
type Classifier interface {
	Probability(features []float64) (float64, error)
}

// Regressor produces the continuous 3-month personal inflation forecast
// (percent) for a single feature row
type Regressor interface {
	Forecast(features []float64) (float64, error)
}

// Engine holds the two independently trained models and the calibrated
// decision threshold. Both models consume the identical feature vector and
// share no intermediate state; the artifacts are loaded once at process
// start and are read-only afterwards.
type Engine struct {
	classifier Classifier
	regressor  Regressor
	threshold  float64
}

// NewEngine wires the loaded artifacts into an inference engine
func NewEngine(classifier Classifier, regressor Regressor, threshold float64) (*Engine, error) {
	if classifier == nil || regressor == nil {
		return nil, errors.Wrap(errors.ErrArtifactLoad, "both model artifacts are required")
	}
	if threshold < 0 || threshold > 1 || math.IsNaN(threshold) {
		return nil, errors.Wrapf(errors.ErrArtifactLoad, "threshold %v out of [0,1]", threshold)
	}

	return &Engine{
		classifier: classifier,
		regressor:  regressor,
		threshold:  threshold,
	}, nil
}

// Predict runs both models over the feature vector and returns the risk
// probability and forecast percentage. Non-finite inputs or outputs surface
// as ErrInference rather than silently producing a result.
func (e *Engine) Predict(features []float64) (probability, forecast float64, err error) {
	if len(features) != cpih.FeatureCount {
		return 0, 0, errors.Wrapf(errors.ErrFeatureMismatch,
			"expected %d features, got %d", cpih.FeatureCount, len(features))
	}
	for i, v := range features {
		if !isFinite(v) {
			return 0, 0, errors.Wrapf(errors.ErrInference, "non-finite feature at column %d", i)
		}
	}

	probability, err = e.classifier.Probability(features)
	if err != nil {
		return 0, 0, errors.Wrap(err, "classifier")
	}
	if !isFinite(probability) || probability < 0 || probability > 1 {
		return 0, 0, errors.Wrapf(errors.ErrInference, "classifier produced invalid probability %v", probability)
	}

	forecast, err = e.regressor.Forecast(features)
	if err != nil {
		return 0, 0, errors.Wrap(err, "regressor")
	}
	if !isFinite(forecast) {
		return 0, 0, errors.Wrapf(errors.ErrInference, "regressor produced non-finite forecast %v", forecast)
	}

	return probability, forecast, nil
}

// Threshold returns the calibrated decision threshold loaded with the
// classifier artifact
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Flag classifies a probability against the stored threshold
func (e *Engine) Flag(probability float64) cpih.RiskFlag {
	return cpih.FlagFor(probability, e.threshold)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
