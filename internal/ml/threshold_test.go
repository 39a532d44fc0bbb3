package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costpulse/pkg/errors"
)

func writeSidecar(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cls_model.threshold.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadThreshold(t *testing.T) {
	threshold, err := LoadThreshold(writeSidecar(t, `{"threshold": 0.42}`))
	require.NoError(t, err)
	assert.Equal(t, 0.42, threshold)
}

func TestLoadThreshold_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{"invalid json", func(t *testing.T) string { return writeSidecar(t, "not json") }},
		{"out of range", func(t *testing.T) string { return writeSidecar(t, `{"threshold": 1.7}`) }},
		{"negative", func(t *testing.T) string { return writeSidecar(t, `{"threshold": -0.2}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadThreshold(tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrArtifactLoad), "got %v", err)
		})
	}
}
