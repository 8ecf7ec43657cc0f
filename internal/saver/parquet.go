package saver

import (
	"io"

	"github.com/parquet-go/parquet-go"

	"b3-data/internal/model"
)

// ParquetSaver encodes partitions as snappy-compressed Parquet, the storage
// standard for the raw zone (Glue/Spark-friendly ms timestamps).
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Encode(bars []model.Bar, w io.Writer) error {
	return parquet.Write(w, bars, parquet.Compression(&parquet.Snappy))
}
