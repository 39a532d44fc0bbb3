package ml

import (
	"encoding/json"
	"os"

	"costpulse/pkg/errors"
)

// thresholdSidecar is written next to the classifier artifact at calibration
// time, e.g. {"threshold": 0.42}
type thresholdSidecar struct {
	Threshold float64 `json:"threshold"`
}

// LoadThreshold reads the calibrated decision threshold from the sidecar
// file. The threshold was fixed at training time and is loaded verbatim,
// never recomputed.
func LoadThreshold(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrArtifactLoad, "read threshold %s: %v", path, err)
	}

	var sidecar thresholdSidecar
	if err := json.Unmarshal(data, &sidecar); err != nil {
		return 0, errors.Wrapf(errors.ErrArtifactLoad, "parse threshold %s: %v", path, err)
	}
	if sidecar.Threshold < 0 || sidecar.Threshold > 1 {
		return 0, errors.Wrapf(errors.ErrArtifactLoad,
			"threshold %v out of [0,1]", sidecar.Threshold)
	}

	return sidecar.Threshold, nil
}
