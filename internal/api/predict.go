package api

import (
	"encoding/json"
	"net/http"

	"costpulse/internal/domain/cpih"
	"costpulse/internal/services/prediction"
	"costpulse/pkg/errors"
	"costpulse/pkg/logger"
)

// PredictHandler exposes the prediction pipeline over HTTP
type PredictHandler struct {
	svc *prediction.Service
	log *logger.Logger
}

// NewPredictHandler creates the predict endpoint handler
func NewPredictHandler(svc *prediction.Service, log *logger.Logger) *PredictHandler {
	return &PredictHandler{svc: svc, log: log}
}

// errorResponse is the JSON error body
type errorResponse struct {
	Error string `json:"error"`
}

// HandlePredict serves POST /predict. The body is a flat JSON object of
// category name to raw weight, e.g. {"Housing": 35, "Food": 25}. Unknown
// category names are ignored; missing ones count as zero.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var payload map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object of category to weight"})
		return
	}

	raw := make(cpih.WeightMap, len(payload))
	for name, value := range payload {
		c := cpih.Category(name)
		if !c.Valid() {
			continue
		}
		raw[c] = value
	}

	result, err := h.svc.Predict(r.Context(), raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleDefaults serves GET /defaults with the suggested starting budget
// breakdown, so callers can seed their input controls.
func (h *PredictHandler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	defaults := h.svc.DefaultWeights()
	out := make(map[string]float64, len(defaults))
	for c, v := range defaults {
		out[c.String()] = v
	}
	writeJSON(w, http.StatusOK, out)
}

// writeError maps pipeline errors to HTTP statuses: the dataset being
// unavailable is a retryable 503, a record missing a category means the
// upstream dataset is broken (502), a model failure is a plain 500.
func (h *PredictHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "prediction failed"

	switch {
	case errors.Is(err, errors.ErrDataUnavailable):
		status = http.StatusServiceUnavailable
		message = "index data unavailable"
	case errors.Is(err, errors.ErrFeatureMismatch):
		status = http.StatusBadGateway
		message = "index data is missing a required category"
	case errors.Is(err, errors.ErrInference):
		message = "model inference failed"
	}

	h.log.ErrorWithContext(r.Context(), err, map[string]string{
		"component": "api",
		"endpoint":  "/predict",
	})
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
