package prediction

import (
	"context"
	"time"

	"costpulse/internal/dataset"
	"costpulse/internal/domain/cpih"
	"costpulse/internal/metrics"
	"costpulse/internal/ml/risk"
	"costpulse/pkg/errors"
	"costpulse/pkg/logger"
)

// Service runs the prediction pipeline: normalize the caller's raw budget
// weights, fetch the latest index record, assemble the feature vector, run
// both models and format the result. Stateless between calls; the only
// shared state is the read-only engine and the per-call dataset read.
type Service struct {
	store  dataset.Store
	engine *risk.Engine
	log    *logger.Logger
}

// New creates the prediction service
func New(store dataset.Store, engine *risk.Engine, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		engine: engine,
		log:    log,
	}
}

// Predict computes the personalized inflation estimate for the raw weight
// map. Malformed weight entries degrade to zero; dataset and model failures
// surface as ErrDataUnavailable, ErrFeatureMismatch or ErrInference.
func (s *Service) Predict(ctx context.Context, raw cpih.WeightMap) (*cpih.Prediction, error) {
	started := time.Now()

	result, err := s.predict(ctx, raw)

	metrics.PredictionDuration.Observe(time.Since(started).Seconds())
	metrics.Predictions.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		return nil, err
	}

	metrics.RiskFlags.WithLabelValues(string(result.RiskFlag)).Inc()
	s.log.Debugw("prediction computed",
		"month", result.LatestMonth,
		"forecast_pct", result.ForecastPct,
		"risk_probability", result.RiskProbability,
		"risk_flag", result.RiskFlag,
	)
	return result, nil
}

func (s *Service) predict(ctx context.Context, raw cpih.WeightMap) (*cpih.Prediction, error) {
	weights := cpih.NormalizeWeights(raw)

	record, err := s.store.Latest(ctx)
	if err != nil {
		metrics.DatasetReads.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.DatasetReads.WithLabelValues("success").Inc()
	metrics.LatestDatasetMonth.Set(float64(record.Date.Unix()))

	features, err := cpih.AssembleFeatures(record, weights)
	if err != nil {
		return nil, err
	}

	inferStarted := time.Now()
	probability, forecast, err := s.engine.Predict(features)
	metrics.InferenceDuration.WithLabelValues("combined").Observe(time.Since(inferStarted).Seconds())
	if err != nil {
		return nil, err
	}

	return cpih.FormatPrediction(record, weights, probability, forecast, s.engine.Threshold()), nil
}

// DefaultWeights returns the suggested starting budget breakdown
func (s *Service) DefaultWeights() cpih.WeightMap {
	return cpih.DefaultWeights()
}

// statusLabel maps a pipeline error to its metrics label
func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, errors.ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, errors.ErrFeatureMismatch):
		return "feature_mismatch"
	case errors.Is(err, errors.ErrInference):
		return "inference_error"
	default:
		return "error"
	}
}
