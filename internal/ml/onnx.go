package ml

import (
	"sync"

	onnxruntime "github.com/yalue/onnxruntime_go"

	"costpulse/pkg/errors"
)

// Trained artifacts exported with skl2onnx use a single "input" tensor.
// The classifier emits "output" (predicted label) and "probabilities"
// (per-class probabilities); the regressor emits "variable".
const (
	inputName           = "input"
	classifierLabelName = "output"
	classifierProbaName = "probabilities"
	regressorOutputName = "variable"
)

// binary classifier: class 0 (low risk) and class 1 (high risk)
const numClasses = 2

func newSession(modelPath string, outputNames []string) (*onnxruntime.DynamicAdvancedSession, error) {
	// The runtime environment is process-wide and re-initializing it is an
	// error, so only the first artifact load initializes it.
	if !onnxruntime.IsInitialized() {
		if err := onnxruntime.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "failed to initialize ONNX runtime")
		}
	}

	options, err := onnxruntime.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session options")
	}
	defer options.Destroy()

	session, err := onnxruntime.NewDynamicAdvancedSession(modelPath,
		[]string{inputName}, outputNames, options)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrArtifactLoad, "load %s: %v", modelPath, err)
	}

	return session, nil
}

// inputTensor builds the [1, len(features)] float32 input row
func inputTensor(features []float64) (*onnxruntime.Tensor[float32], error) {
	data := make([]float32, len(features))
	for i, v := range features {
		data[i] = float32(v)
	}
	shape := onnxruntime.NewShape(1, int64(len(features)))
	tensor, err := onnxruntime.NewTensor(shape, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create input tensor")
	}
	return tensor, nil
}

// ClassifierModel wraps the risk classifier ONNX session. Sessions are not
// guaranteed safe for concurrent Run calls, so access is serialized per
// artifact with a mutex.
type ClassifierModel struct {
	mu      sync.Mutex
	session *onnxruntime.DynamicAdvancedSession
}

// LoadClassifier loads the classifier artifact from file
func LoadClassifier(modelPath string) (*ClassifierModel, error) {
	session, err := newSession(modelPath, []string{classifierLabelName, classifierProbaName})
	if err != nil {
		return nil, err
	}
	return &ClassifierModel{session: session}, nil
}

// Probability runs inference for a single feature row and returns the
// probability of the positive (high risk) class
func (m *ClassifierModel) Probability(features []float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return 0, errors.New("classifier session is nil")
	}

	input, err := inputTensor(features)
	if err != nil {
		return 0, err
	}
	defer input.Destroy()

	labelOut := make([]int64, 1)
	labelTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(1), labelOut)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create label output tensor")
	}
	defer labelTensor.Destroy()

	probaOut := make([]float32, numClasses)
	probaTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(1, numClasses), probaOut)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create probabilities output tensor")
	}
	defer probaTensor.Destroy()

	err = m.session.Run(
		[]onnxruntime.Value{input},
		[]onnxruntime.Value{labelTensor, probaTensor},
	)
	if err != nil {
		return 0, errors.Wrap(err, "classifier inference failed")
	}

	return float64(probaOut[numClasses-1]), nil
}

// Destroy cleans up the classifier session
func (m *ClassifierModel) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}

// RegressorModel wraps the forecast regressor ONNX session, serialized the
// same way as the classifier.
type RegressorModel struct {
	mu      sync.Mutex
	session *onnxruntime.DynamicAdvancedSession
}

// LoadRegressor loads the regressor artifact from file
func LoadRegressor(modelPath string) (*RegressorModel, error) {
	session, err := newSession(modelPath, []string{regressorOutputName})
	if err != nil {
		return nil, err
	}
	return &RegressorModel{session: session}, nil
}

// Forecast runs inference for a single feature row and returns the
// continuous forecast value
func (m *RegressorModel) Forecast(features []float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return 0, errors.New("regressor session is nil")
	}

	input, err := inputTensor(features)
	if err != nil {
		return 0, err
	}
	defer input.Destroy()

	out := make([]float32, 1)
	outTensor, err := onnxruntime.NewTensor(onnxruntime.NewShape(1, 1), out)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create output tensor")
	}
	defer outTensor.Destroy()

	err = m.session.Run(
		[]onnxruntime.Value{input},
		[]onnxruntime.Value{outTensor},
	)
	if err != nil {
		return 0, errors.Wrap(err, "regressor inference failed")
	}

	return float64(out[0]), nil
}

// Destroy cleans up the regressor session
func (m *RegressorModel) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}
