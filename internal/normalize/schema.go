package normalize

import (
	"errors"
	"fmt"
	"strings"

	"b3-data/internal/provider"
)

// ErrSchemaMismatch means a frame cannot be reduced to the fixed flat column
// set: the timestamp index or the close column is absent entirely. Single
// rows with a missing close cell are dropped and counted instead.
var ErrSchemaMismatch = errors.New("schema mismatch")

// colRename folds source column spellings into the target flat set.
// Anything outside this map is a grouping artifact or an extra column and
// gets dropped.
var colRename = map[string]string{
	"open":      "open",
	"high":      "high",
	"low":       "low",
	"close":     "close",
	"adj close": "adj_close",
	"adj_close": "adj_close",
	"adjclose":  "adj_close",
	"volume":    "volume",
}

// Row is one flattened observation, still carrying the raw (pre-UTC)
// timestamp. Nil prices are missing cells; Close is guaranteed non-nil.
type Row struct {
	Ticker   string
	Time     provider.RawTime
	Open     *float64
	High     *float64
	Low      *float64
	Close    *float64
	AdjClose *float64
	Volume   *float64
}

// Flatten reduces a possibly symbol-grouped frame to the fixed flat column
// set {ticker, trade_timestamp, open, high, low, close, adj_close, volume}.
// The outer "<symbol>/" level is dropped once resolved to the frame's own
// ticker; groups for other symbols and unknown columns are ignored. Rows
// whose close cell is null are dropped and reported in dropped.
func Flatten(f *provider.RawFrame) (rows []Row, dropped int, err error) {
	if f == nil || len(f.Index) == 0 {
		return nil, 0, fmt.Errorf("%w: missing timestamp index", ErrSchemaMismatch)
	}

	cols := make(map[string][]*float64, len(f.Columns))
	for name, values := range f.Columns {
		flat, ok := flatName(name, f.Ticker)
		if !ok {
			continue
		}
		cols[flat] = values
	}

	closeCol, ok := cols["close"]
	if !ok {
		return nil, 0, fmt.Errorf("%w: no close column after flattening", ErrSchemaMismatch)
	}

	rows = make([]Row, 0, len(f.Index))
	for i := range f.Index {
		if cell(closeCol, i) == nil {
			dropped++
			continue
		}
		rows = append(rows, Row{
			Ticker:   f.Ticker,
			Time:     f.Index[i],
			Open:     cell(cols["open"], i),
			High:     cell(cols["high"], i),
			Low:      cell(cols["low"], i),
			Close:    cell(closeCol, i),
			AdjClose: cell(cols["adj_close"], i),
			Volume:   cell(cols["volume"], i),
		})
	}
	return rows, dropped, nil
}

// flatName strips the outer grouping level when it matches the resolved
// ticker and maps the source spelling to the target column name. Reports
// false for columns outside the target set or grouped under another symbol.
func flatName(name, ticker string) (string, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	if i := strings.IndexByte(name, '/'); i >= 0 {
		if !strings.EqualFold(name[:i], ticker) {
			return "", false
		}
		name = name[i+1:]
	}
	flat, ok := colRename[name]
	return flat, ok
}

// cell returns the i-th value of a column, tolerating short or absent
// columns (the source pads unevenly on partial days).
func cell(col []*float64, i int) *float64 {
	if i >= len(col) {
		return nil
	}
	return col[i]
}
