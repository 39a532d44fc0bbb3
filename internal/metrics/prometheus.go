package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Prediction pipeline metrics
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costpulse_predictions_total",
			Help: "Total number of prediction requests",
		},
		[]string{"status"}, // status: success|data_unavailable|feature_mismatch|inference_error|error
	)

	PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "costpulse_prediction_duration_seconds",
			Help:    "End-to-end prediction pipeline duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RiskFlags = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costpulse_risk_flags_total",
			Help: "Total risk flags produced by outcome",
		},
		[]string{"flag"}, // flag: HIGH|LOW
	)

	// Dataset metrics
	DatasetReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costpulse_dataset_reads_total",
			Help: "Total reads of the index dataset",
		},
		[]string{"status"}, // status: success|error
	)

	LatestDatasetMonth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "costpulse_dataset_latest_month_timestamp",
			Help: "Unix timestamp of the latest published index record observed",
		},
	)

	// Inference metrics
	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "costpulse_inference_duration_seconds",
			Help:    "Model inference duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"model"}, // model: combined (both models over one feature row)
	)
)

// init registers all metrics with the default registry
func init() {
	prometheus.MustRegister(
		Predictions,
		PredictionDuration,
		RiskFlags,
		DatasetReads,
		LatestDatasetMonth,
		InferenceDuration,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
