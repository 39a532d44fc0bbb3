package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"costpulse/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Dataset       DatasetConfig
	Model         ModelConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"costpulse"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

type ServerConfig struct {
	Port            int           `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
}

// DatasetConfig selects the backing store for the CPIH index dataset.
// The csv backend reads the published ONS wide extract directly; the sqlite
// backend serves deployments that ingest monthly releases into a database.
type DatasetConfig struct {
	Backend    string `envconfig:"DATASET_BACKEND" default:"csv"`
	CSVPath    string `envconfig:"DATASET_CSV_PATH" default:"data/cpih_wide_yoy.csv"`
	SQLitePath string `envconfig:"DATASET_SQLITE_PATH" default:"data/cpih.db"`
}

// Validate checks the backend selector early so a typo fails at startup
// rather than on the first request.
func (c DatasetConfig) Validate() error {
	switch c.Backend {
	case "csv", "sqlite":
		return nil
	}
	return errors.Wrapf(errors.ErrInvalidInput, "unknown dataset backend %q", c.Backend)
}

// ModelConfig locates the two trained ONNX artifacts. The classifier's
// decision threshold was fixed at calibration time; it is read from the
// sidecar JSON written alongside the artifact when ThresholdPath is set,
// otherwise Threshold is used verbatim.
type ModelConfig struct {
	ClassifierPath string  `envconfig:"MODEL_CLASSIFIER_PATH" default:"artifacts/cls_model.onnx"`
	RegressorPath  string  `envconfig:"MODEL_REGRESSOR_PATH" default:"artifacts/reg_model.onnx"`
	Threshold      float64 `envconfig:"MODEL_THRESHOLD" default:"0.5"`
	ThresholdPath  string  `envconfig:"MODEL_THRESHOLD_PATH"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	if err := cfg.Dataset.Validate(); err != nil {
		return nil, err
	}
	if cfg.Model.Threshold < 0 || cfg.Model.Threshold > 1 {
		return nil, errors.Wrapf(errors.ErrInvalidInput,
			"MODEL_THRESHOLD must be in [0,1], got %v", cfg.Model.Threshold)
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
