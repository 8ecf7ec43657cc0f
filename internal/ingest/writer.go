package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"b3-data/internal/saver"
	"b3-data/internal/store"
)

// PartitionFile reports one written partition.
type PartitionFile struct {
	Key       string   `json:"key"`
	Rows      int      `json:"rows"`
	Locations []string `json:"locations"`
}

// PartitionWriter serializes one partition table and places it in every
// configured store under <prefix>/dt=<key>/<base>.<ext>. Encoding happens
// fully in memory first, so a serialization failure can never leave bytes
// at a destination.
type PartitionWriter struct {
	Saver  saver.PartitionSaver
	Stores []store.Store
	Prefix string // key prefix, the raw zone ("raw")
	Base   string // consolidated file base name ("b3_stocks")
}

// Key returns the object key for a partition key ("raw/dt=2026-01-17/b3_stocks.parquet").
func (w *PartitionWriter) Key(partition string) string {
	return fmt.Sprintf("%s/dt=%s/%s.%s", strings.Trim(w.Prefix, "/"), partition, w.Base, w.Saver.Extension())
}

// Write encodes the table once and puts the same bytes to each store.
// Any failure is a write failure for the whole invocation.
func (w *PartitionWriter) Write(ctx context.Context, table *PartitionTable) (PartitionFile, error) {
	var buf bytes.Buffer
	if err := w.Saver.Encode(table.Bars, &buf); err != nil {
		return PartitionFile{}, fmt.Errorf("encode partition %s: %w", table.Key, err)
	}

	pf := PartitionFile{Key: table.Key, Rows: len(table.Bars)}
	for _, st := range w.Stores {
		loc, err := st.Put(ctx, w.Key(table.Key), buf.Bytes())
		if err != nil {
			return PartitionFile{}, fmt.Errorf("write partition %s (%s): %w", table.Key, st.Name(), err)
		}
		pf.Locations = append(pf.Locations, loc)
	}
	return pf, nil
}
