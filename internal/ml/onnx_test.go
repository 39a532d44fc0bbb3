package ml

import (
	"os"
	"testing"
)

const (
	classifierPath = "../../artifacts/cls_model.onnx"
	regressorPath  = "../../artifacts/reg_model.onnx"
)

func skipWithoutArtifacts(t *testing.T) {
	t.Helper()
	for _, path := range []string{classifierPath, regressorPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skipf("Artifact %s not found, skipping. Export the trained models first.", path)
		}
	}
}

// The runtime environment is shared by both artifacts; loading the second
// model must not fail because the first one already initialized it.
func TestLoadBothArtifactsBackToBack(t *testing.T) {
	skipWithoutArtifacts(t)

	classifier, err := LoadClassifier(classifierPath)
	if err != nil {
		t.Fatalf("Failed to load classifier: %v", err)
	}
	defer classifier.Destroy()

	regressor, err := LoadRegressor(regressorPath)
	if err != nil {
		t.Fatalf("Failed to load regressor after classifier: %v", err)
	}
	defer regressor.Destroy()
}

func TestLoadRegressorFirst(t *testing.T) {
	skipWithoutArtifacts(t)

	// Same guard must hold regardless of load order.
	regressor, err := LoadRegressor(regressorPath)
	if err != nil {
		t.Fatalf("Failed to load regressor: %v", err)
	}
	defer regressor.Destroy()

	classifier, err := LoadClassifier(classifierPath)
	if err != nil {
		t.Fatalf("Failed to load classifier after regressor: %v", err)
	}
	defer classifier.Destroy()
}

func TestDestroyIdempotent(t *testing.T) {
	skipWithoutArtifacts(t)

	classifier, err := LoadClassifier(classifierPath)
	if err != nil {
		t.Fatalf("Failed to load classifier: %v", err)
	}

	// Destroy multiple times should not panic
	classifier.Destroy()
	classifier.Destroy()
}
