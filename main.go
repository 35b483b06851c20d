package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/medsafe/interactions-api/config"
	"github.com/medsafe/interactions-api/data"
	"github.com/medsafe/interactions-api/formulary"
	"github.com/medsafe/interactions-api/health"
	"github.com/medsafe/interactions-api/logging"
	"github.com/medsafe/interactions-api/safety"
	"github.com/medsafe/interactions-api/scheduler"
	"github.com/medsafe/interactions-api/server"
	"github.com/medsafe/interactions-api/validation"
	"github.com/medsafe/interactions-api/watcher"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogRetentionDays, parseLogLevel(cfg.LogLevel))

	// The knowledge base loads exactly once; a bad dataset is fatal here and
	// never a per-request concern.
	start := time.Now()
	f, err := formulary.LoadFile(cfg.DatasetPath)
	if err != nil {
		logging.Error("Failed to load medication dataset", "error", err, "path", cfg.DatasetPath)
		os.Exit(1)
	}
	logging.Info("Medication dataset loaded",
		"path", cfg.DatasetPath,
		"medications", len(f.Drugs()),
		"interactions", len(f.Interactions()),
		"duration", time.Since(start).String(),
	)

	validator := validation.NewDataValidator()
	report := validator.ReportDataQuality(f.Drugs(), f.Interactions())
	if len(report.DuplicateDrugIDs) > 0 {
		logging.Warn("Duplicate drug IDs in dataset", "ids", report.DuplicateDrugIDs)
	}
	if len(report.DanglingReferences) > 0 {
		logging.Warn("Interactions referencing unknown drugs",
			"count", len(report.DanglingReferences), "pairs", report.DanglingReferences)
	}
	if report.SelfPairs > 0 {
		logging.Warn("Interactions pairing a drug with itself", "count", report.SelfPairs)
	}
	drugs := f.Drugs()
	for i := range drugs {
		if err := validator.ValidateDrug(&drugs[i]); err != nil {
			logging.Warn("Suspect drug record in dataset", "error", err)
		}
	}

	dataContainer := data.NewDataContainer()
	dataContainer.SetFormulary(f.Drugs(), f.DrugsByID(), f.Interactions())
	dataContainer.SetServerStartTime(time.Now())

	engine := safety.NewEngine(dataContainer)
	checker := health.NewHealthChecker(dataContainer)

	sched := scheduler.NewScheduler(dataContainer)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	datasetWatcher, err := watcher.NewDatasetWatcher(cfg.DatasetPath)
	if err != nil {
		logging.Warn("Dataset watcher unavailable", "error", err)
	} else {
		datasetWatcher.Start()
		defer datasetWatcher.Close()
	}

	srv := server.NewServer(cfg, dataContainer, engine, validator, checker)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
	}
}
