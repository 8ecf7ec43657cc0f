package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"b3-data/internal/normalize"
	"b3-data/internal/provider"
)

// ErrEmptyRun fails the invocation when no ticker contributed a single row.
var ErrEmptyRun = errors.New("no rows ingested for any ticker")

// Per-ticker outcome statuses.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Outcome is the per-ticker result of one run.
type Outcome struct {
	Ticker  string `json:"ticker"`
	Status  string `json:"status"`
	Rows    int    `json:"rows"`
	Dropped int    `json:"dropped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Summary is the user-visible result of one run: what happened per ticker
// and which partition files were written.
type Summary struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	Source     string          `json:"source"`
	Interval   string          `json:"interval"`
	Outcomes   []Outcome       `json:"outcomes"`
	Partitions []PartitionFile `json:"partitions"`
}

// Orchestrator drives one ingestion pass: sequential fetch per ticker,
// normalization, aggregation by trade day, then one write per partition
// after every ticker resolved. Per-ticker problems degrade gracefully;
// only write failures and a fully empty run fail the invocation.
type Orchestrator struct {
	Source provider.BarSource
	Writer *PartitionWriter
}

func NewOrchestrator(src provider.BarSource, w *PartitionWriter) *Orchestrator {
	return &Orchestrator{Source: src, Writer: w}
}

// Run executes one ingestion pass for the request. The returned Summary is
// non-nil even when err is set, so callers can still report outcomes.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.LikelyTruncated() {
		slog.Warn("intraday interval with long period may return truncated history",
			"interval", req.Interval, "period", req.Period)
	}

	win := req.Window()
	sum := &Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Source:    o.Source.Name(),
		Interval:  req.Interval,
	}
	slog.Info("ingestion start", "run_id", sum.RunID, "tickers", len(req.Tickers),
		"interval", req.Interval, "period", req.Period, "explicit", win.Explicit())

	agg := NewAggregator()
	for _, ticker := range req.Tickers {
		sum.Outcomes = append(sum.Outcomes, o.ingestTicker(ctx, ticker, win, agg))
	}

	if agg.Rows() == 0 {
		return sum, ErrEmptyRun
	}

	for _, key := range agg.Keys() {
		pf, err := o.Writer.Write(ctx, agg.Table(key))
		if err != nil {
			return sum, err
		}
		slog.Info("partition written", "dt", pf.Key, "rows", pf.Rows, "locations", pf.Locations)
		sum.Partitions = append(sum.Partitions, pf)
	}
	return sum, nil
}

// ingestTicker fetches, flattens and normalizes one ticker into the
// aggregator, translating the error taxonomy into an outcome.
func (o *Orchestrator) ingestTicker(ctx context.Context, ticker string, win provider.Window, agg *Aggregator) Outcome {
	frame, err := o.Source.Fetch(ctx, ticker, win)
	switch {
	case errors.Is(err, provider.ErrNoData):
		slog.Warn("no data for ticker", "ticker", ticker, "error", err)
		return Outcome{Ticker: ticker, Status: StatusSkipped, Reason: err.Error()}
	case err != nil:
		slog.Error("fetch failed", "ticker", ticker, "error", err)
		return Outcome{Ticker: ticker, Status: StatusFailed, Reason: err.Error()}
	}

	rows, dropped, err := normalize.Flatten(frame)
	if err != nil {
		slog.Error("schema mismatch", "ticker", ticker, "error", err)
		return Outcome{Ticker: ticker, Status: StatusFailed, Reason: err.Error()}
	}
	if dropped > 0 {
		slog.Warn("rows dropped for missing close", "ticker", ticker, "dropped", dropped)
	}

	bars := normalize.BuildBars(rows)
	if len(bars) == 0 {
		return Outcome{Ticker: ticker, Status: StatusSkipped, Dropped: dropped, Reason: "all rows dropped"}
	}

	agg.Add(bars)
	slog.Info("ticker ingested", "ticker", ticker, "rows", len(bars), "dropped", dropped)
	return Outcome{Ticker: ticker, Status: StatusOK, Rows: len(bars), Dropped: dropped}
}
