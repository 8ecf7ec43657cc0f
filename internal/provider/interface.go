package provider

import (
	"context"
	"errors"
	"time"
)

// Per-ticker fetch errors. Both are non-fatal for a run: the orchestrator
// records the outcome and continues with the remaining tickers.
var (
	// ErrSourceUnavailable means the network call or the source itself failed.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNoData means the source answered with an empty result for the
	// ticker/window combination.
	ErrNoData = errors.New("no data for ticker/window")
)

// Window selects the time range and granularity of one fetch. Either Period
// holds a relative range token (e.g. "1mo", "30d") or Start/End are explicit
// UTC day bounds with End exclusive.
type Window struct {
	Period   string
	Start    time.Time
	End      time.Time
	Interval string
}

// Explicit reports whether the window is bounded by explicit dates rather
// than a relative period.
func (w Window) Explicit() bool { return !w.Start.IsZero() }

// RawTime is a source timestamp before normalization. Zoned marks whether
// the source attached timezone information; naive values keep their clock
// reading and are relabeled UTC downstream, never shifted.
type RawTime struct {
	Wall  time.Time
	Zoned bool
}

// RawFrame is the column-oriented result of one ticker fetch, shaped the way
// the source emitted it: a timestamp index plus named value columns. Column
// names may carry an outer "<SYMBOL>/" grouping level; nil cells are missing
// values. The schema normalizer reduces this to the fixed flat column set.
type RawFrame struct {
	Ticker  string
	Index   []RawTime
	Columns map[string][]*float64
}

// BarSource fetches raw time-series rows for one ticker over a window.
type BarSource interface {
	Name() string
	Fetch(ctx context.Context, ticker string, win Window) (*RawFrame, error)
	Close() error
}
