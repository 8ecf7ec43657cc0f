package saver

import (
	"io"
	"strings"

	"b3-data/internal/model"
)

// PartitionSaver encodes one partition's bars to a destination stream.
// High-level code injects the implementation; the partition writer only
// depends on this interface.
type PartitionSaver interface {
	Encode(bars []model.Bar, w io.Writer) error
	Extension() string
}

// NewPartitionSaver creates an implementation by format (parquet, csv,
// json). Returns nil if the format is not supported.
func NewPartitionSaver(format string) PartitionSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "parquet":
		return ParquetSaver{}
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}
