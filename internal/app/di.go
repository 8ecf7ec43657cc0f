package app

import (
	"context"
	"fmt"

	"b3-data/internal/ingest"
	"b3-data/internal/provider"
	"b3-data/internal/provider/yahoo"
	"b3-data/internal/saver"
	"b3-data/internal/store"
)

// ProvideConfig loads config from the environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideSource creates the chart API client (for Wire).
func ProvideSource(cfg *Config) *yahoo.Client {
	return yahoo.NewClient()
}

// ProvideSaver creates the partition encoder from config (for Wire).
// Returns an error if SAVE_FORMAT is not supported.
func ProvideSaver(cfg *Config) (saver.PartitionSaver, error) {
	ps := saver.NewPartitionSaver(cfg.SaveFormat)
	if ps == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: parquet, csv, json)", cfg.SaveFormat)
	}
	return ps, nil
}

// ProvideStores creates the destination stores selected by DESTINATION
// (for Wire). At least one store always results; config validation already
// guaranteed the bucket when S3 is selected.
func ProvideStores(cfg *Config) ([]store.Store, error) {
	var stores []store.Store
	if cfg.WriteLocal() {
		stores = append(stores, store.LocalStore{Root: cfg.DataDir})
	}
	if cfg.UploadS3() {
		s3s, err := store.NewS3Store(context.Background(), cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s3s)
	}
	return stores, nil
}

// ProvideWriter assembles the partition writer (for Wire).
func ProvideWriter(cfg *Config, ps saver.PartitionSaver, stores []store.Store) *ingest.PartitionWriter {
	return &ingest.PartitionWriter{
		Saver:  ps,
		Stores: stores,
		Prefix: cfg.S3Prefix,
		Base:   "b3_stocks",
	}
}

// ProvideOrchestrator assembles the run orchestrator (for Wire).
func ProvideOrchestrator(src provider.BarSource, w *ingest.PartitionWriter) *ingest.Orchestrator {
	return ingest.NewOrchestrator(src, w)
}
