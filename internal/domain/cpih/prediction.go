package cpih

import "math"

// RiskFlag is the binary inflation risk classification
type RiskFlag string

const (
	RiskHigh RiskFlag = "HIGH"
	RiskLow  RiskFlag = "LOW"
)

// FlagFor derives the risk flag from a probability and the calibrated
// decision threshold. HIGH iff probability >= threshold.
func FlagFor(probability, threshold float64) RiskFlag {
	if probability >= threshold {
		return RiskHigh
	}
	return RiskLow
}

// Prediction is the per-request pipeline result. Field names on the wire
// match the public API contract.
type Prediction struct {
	LatestHeadlinePct float64              `json:"latest_headline_cpih_pct"`
	LatestMonth       string               `json:"latest_month"`
	ForecastPct       float64              `json:"forecast_personal_inflation_pct"`
	RiskProbability   float64              `json:"risk_probability"`
	Threshold         float64              `json:"threshold"`
	RiskFlag          RiskFlag             `json:"risk_flag"`
	NormalizedWeights map[Category]float64 `json:"weights_normalized"`
}

// FormatPrediction rounds and labels raw pipeline outputs for presentation:
// forecast and headline to 2 decimal places, probability to 4, threshold
// to 3. Pure transform; inputs are not mutated.
func FormatPrediction(record *IndexRecord, weights WeightMap, probability, forecast, threshold float64) *Prediction {
	normalized := make(map[Category]float64, len(weights))
	for c, w := range weights {
		normalized[c] = w
	}

	return &Prediction{
		LatestHeadlinePct: roundTo(record.Headline, 2),
		LatestMonth:       record.MonthLabel(),
		ForecastPct:       roundTo(forecast, 2),
		RiskProbability:   roundTo(probability, 4),
		Threshold:         roundTo(threshold, 3),
		RiskFlag:          FlagFor(probability, threshold),
		NormalizedWeights: normalized,
	}
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
