package main

import (
	"context"
	"log/slog"
	"os"

	"b3-data/internal/app"
	"b3-data/internal/ingest"
	"b3-data/internal/provider"
	"b3-data/internal/slogx"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Source provider.BarSource
	Runner *ingest.Orchestrator
}

const (
	exitConfig  = 2
	exitRuntime = 1
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(exitConfig)
	}
	defer a.Source.Close()

	cfg := a.Config
	slog.SetDefault(slogx.NewDefault(cfg.LogLevel))

	req := cfg.Request()
	if err := req.Validate(); err != nil {
		slog.Error("invalid request", "error", err)
		os.Exit(exitConfig)
	}

	slog.Info("destination", "mode", cfg.Destination, "data_dir", cfg.DataDir,
		"bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix, "format", cfg.SaveFormat)

	sum, err := a.Runner.Run(context.Background(), req)
	if sum != nil {
		if repErr := ingest.WriteRunReport(cfg.DataDir, sum); repErr != nil {
			slog.Warn("could not write run report", "error", repErr)
		}
		ok, skipped, failed := sum.Counts()
		slog.Info("run finished", "run_id", sum.RunID, "ok", ok, "skipped", skipped,
			"failed", failed, "partitions", len(sum.Partitions))
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(exitRuntime)
	}
}
