package store

import "context"

// Store places finished partition bytes at a key like
// "raw/dt=2026-01-17/b3_stocks.parquet". Implementations must make the
// final name visible only once the full payload is in place, and must
// replace any existing object at the same key. Put returns the final
// location for run reporting.
type Store interface {
	Put(ctx context.Context, key string, data []byte) (location string, err error)
	Name() string
}
