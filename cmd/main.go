package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"costpulse/internal/adapters/config"
	"costpulse/internal/adapters/errors/noop"
	"costpulse/internal/adapters/errors/sentry"
	"costpulse/internal/api"
	"costpulse/internal/api/health"
	"costpulse/internal/dataset"
	"costpulse/internal/ml"
	"costpulse/internal/ml/risk"
	"costpulse/internal/services/prediction"
	"costpulse/pkg/errors"
	"costpulse/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Load model artifacts. Failure here is fatal: the service cannot
	// answer any request without both artifacts present.
	engine := loadEngine(cfg, log)

	// Open the index dataset store
	store := openStore(cfg, log)

	// Wire the prediction pipeline
	svc := prediction.New(store, engine, log)

	// HTTP server
	healthHandler := health.New(log, store, cfg.App.Name, cfg.App.Version)
	server := api.NewServer(*cfg, svc, healthHandler, log)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.Info("System initialized successfully")

	waitForShutdown(cfg, server, serverErr, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// loadEngine loads both ONNX artifacts and the calibrated threshold,
// aborting the process on any failure
func loadEngine(cfg *config.Config, log *logger.Logger) *risk.Engine {
	classifier, err := ml.LoadClassifier(cfg.Model.ClassifierPath)
	if err != nil {
		log.Fatalf("Failed to load classifier artifact: %v", err)
	}

	regressor, err := ml.LoadRegressor(cfg.Model.RegressorPath)
	if err != nil {
		log.Fatalf("Failed to load regressor artifact: %v", err)
	}

	threshold := cfg.Model.Threshold
	if cfg.Model.ThresholdPath != "" {
		threshold, err = ml.LoadThreshold(cfg.Model.ThresholdPath)
		if err != nil {
			log.Fatalf("Failed to load decision threshold: %v", err)
		}
	}

	engine, err := risk.NewEngine(classifier, regressor, threshold)
	if err != nil {
		log.Fatalf("Failed to build inference engine: %v", err)
	}

	log.Infow("Model artifacts loaded",
		"classifier", cfg.Model.ClassifierPath,
		"regressor", cfg.Model.RegressorPath,
		"threshold", threshold,
	)
	return engine
}

// openStore opens the configured index dataset backend
func openStore(cfg *config.Config, log *logger.Logger) dataset.Store {
	switch cfg.Dataset.Backend {
	case "sqlite":
		store, err := dataset.NewSQLiteStore(cfg.Dataset.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite dataset: %v", err)
		}
		log.Infof("Index dataset: sqlite at %s", cfg.Dataset.SQLitePath)
		return store
	default:
		log.Infof("Index dataset: csv at %s", cfg.Dataset.CSVPath)
		return dataset.NewCSVStore(cfg.Dataset.CSVPath)
	}
}

// waitForShutdown blocks until a termination signal or server failure,
// then drains connections and flushes the error tracker
func waitForShutdown(cfg *config.Config, server *api.Server, serverErr <-chan error, tracker errors.Tracker, log *logger.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("Received signal %s, shutting down...", sig)
	case err := <-serverErr:
		if err != nil {
			log.Errorf("HTTP server failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}

	if err := tracker.Flush(ctx); err != nil {
		log.Warnf("Error tracker flush failed: %v", err)
	}

	log.Info("Shutdown complete")
}
