package normalize

import (
	"math"
	"time"

	"b3-data/internal/model"
	"b3-data/internal/provider"
)

// ToUTC converts a raw source timestamp to the canonical UTC instant at
// millisecond precision. Zoned values are shifted numerically to UTC; naive
// values are assumed to already read as UTC and are only relabeled; the
// clock value never changes.
func ToUTC(rt provider.RawTime) time.Time {
	t := rt.Wall
	if rt.Zoned {
		t = t.In(time.UTC)
	} else {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t.Truncate(time.Millisecond)
}

// PartitionKey derives the dt= segment from the canonical UTC instant's
// date component. It must never come from a display timezone or from the
// run date: an off-by-one here silently moves a trading day's rows into
// the adjacent partition.
func PartitionKey(utc time.Time) string {
	return utc.UTC().Format("2006-01-02")
}

// PartitionKeyMillis is PartitionKey for a stored Unix-millisecond value.
func PartitionKeyMillis(ms int64) string {
	return PartitionKey(time.UnixMilli(ms))
}

// BuildBars normalizes flattened rows into persisted bars. Missing optional
// prices are kept as NaN; a missing volume is coerced to 0 so the column
// stays a stable int64.
func BuildBars(rows []Row) []model.Bar {
	bars := make([]model.Bar, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, model.Bar{
			Ticker:         r.Ticker,
			TradeTimestamp: ToUTC(r.Time).UnixMilli(),
			Open:           floatOr(r.Open),
			High:           floatOr(r.High),
			Low:            floatOr(r.Low),
			Close:          floatOr(r.Close),
			AdjClose:       floatOr(r.AdjClose),
			Volume:         volumeOr(r.Volume),
		})
	}
	return bars
}

func floatOr(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func volumeOr(p *float64) int64 {
	if p == nil || math.IsNaN(*p) || *p < 0 {
		return 0
	}
	return int64(*p)
}
