package ingest

import (
	"sort"

	"b3-data/internal/model"
	"b3-data/internal/normalize"
)

// PartitionTable accumulates every bar sharing one trade-day key during a
// run, across all tickers. Created empty on first sight of the key and
// handed to the writer only after all tickers resolved.
type PartitionTable struct {
	Key  string
	Bars []model.Bar
}

// Aggregator groups normalized bars by partition key. Only the single run
// goroutine ever touches it, so it needs no locking.
type Aggregator struct {
	parts map[string]*PartitionTable
}

func NewAggregator() *Aggregator {
	return &Aggregator{parts: make(map[string]*PartitionTable)}
}

// Add appends bars to their trade-day tables. The key comes from each bar's
// own canonical UTC timestamp, never from the run date. Intraday bars
// sharing a day stay distinct rows; nothing is deduplicated or collapsed.
func (a *Aggregator) Add(bars []model.Bar) {
	for _, b := range bars {
		key := normalize.PartitionKeyMillis(b.TradeTimestamp)
		t, ok := a.parts[key]
		if !ok {
			t = &PartitionTable{Key: key}
			a.parts[key] = t
		}
		t.Bars = append(t.Bars, b)
	}
}

// Keys returns partition keys in ascending day order.
func (a *Aggregator) Keys() []string {
	keys := make([]string, 0, len(a.parts))
	for k := range a.parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table returns the partition for key, or nil.
func (a *Aggregator) Table(key string) *PartitionTable {
	return a.parts[key]
}

// Rows returns the total bar count across all partitions.
func (a *Aggregator) Rows() int {
	n := 0
	for _, t := range a.parts {
		n += len(t.Bars)
	}
	return n
}
