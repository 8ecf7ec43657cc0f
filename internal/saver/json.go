package saver

import (
	"encoding/json"
	"io"

	"b3-data/internal/model"
)

// JSONSaver encodes partitions as an indented JSON array. Dev-profile
// format; note that NaN price cells are not representable in JSON, so
// frames with missing optional prices need parquet or csv.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Encode(bars []model.Bar, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bars)
}
