package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b3-data/internal/provider"
)

func TestToUTCConvertsZonedValues(t *testing.T) {
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*3600)
	tokyo := time.FixedZone("Asia/Tokyo", 9*3600)

	cases := []struct {
		name    string
		in      time.Time
		wantUTC string
		wantKey string
	}{
		{
			name:    "negative offset crosses day boundary forward",
			in:      time.Date(2026, 1, 16, 23, 30, 0, 0, saoPaulo),
			wantUTC: "2026-01-17T02:30:00Z",
			wantKey: "2026-01-17",
		},
		{
			name:    "positive offset crosses day boundary backward",
			in:      time.Date(2026, 1, 17, 1, 0, 0, 0, tokyo),
			wantUTC: "2026-01-16T16:00:00Z",
			wantKey: "2026-01-16",
		},
		{
			name:    "midday stays on the same day",
			in:      time.Date(2026, 1, 16, 12, 0, 0, 0, saoPaulo),
			wantUTC: "2026-01-16T15:00:00Z",
			wantKey: "2026-01-16",
		},
		{
			name:    "already UTC is unchanged",
			in:      time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC),
			wantUTC: "2026-01-16T10:00:00Z",
			wantKey: "2026-01-16",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToUTC(provider.RawTime{Wall: tc.in, Zoned: true})
			require.Equal(t, tc.wantUTC, got.Format(time.RFC3339))
			assert.Equal(t, tc.wantKey, PartitionKey(got))
		})
	}
}

// Property: for any offset and any hour of day, converting a zoned value
// never changes the instant, and the partition key always follows the UTC
// date, with zero calendar drift across day boundaries.
func TestToUTCZonedOffsetSweep(t *testing.T) {
	for offset := -12; offset <= 14; offset++ {
		zone := time.FixedZone("", offset*3600)
		for hour := 0; hour < 24; hour++ {
			src := time.Date(2026, 1, 16, hour, 30, 0, 0, zone)
			got := ToUTC(provider.RawTime{Wall: src, Zoned: true})

			require.True(t, got.Equal(src), "offset %dh hour %d: instant changed", offset, hour)
			require.Equal(t, time.UTC, got.Location())
			require.Equal(t, src.UTC().Format("2006-01-02"), PartitionKey(got),
				"offset %dh hour %d: key drifted", offset, hour)
		}
	}
}

// Property: naive values are relabeled, never shifted. The clock reading
// before and after normalization is identical at every hour of day.
func TestToUTCNaiveRelabelsWithoutShift(t *testing.T) {
	// the tag on the wall value must be ignored for naive timestamps
	local := time.FixedZone("America/Sao_Paulo", -3*3600)

	for hour := 0; hour < 24; hour++ {
		src := time.Date(2026, 1, 16, hour, 45, 30, 0, local)
		got := ToUTC(provider.RawTime{Wall: src, Zoned: false})

		want := time.Date(2026, 1, 16, hour, 45, 30, 0, time.UTC)
		require.Equal(t, want.Format(time.RFC3339), got.Format(time.RFC3339))
		require.Equal(t, "2026-01-16", PartitionKey(got))
	}
}

func TestToUTCTruncatesToMillisecond(t *testing.T) {
	src := time.Date(2026, 1, 16, 10, 0, 0, 123_456_789, time.UTC)
	got := ToUTC(provider.RawTime{Wall: src, Zoned: true})
	assert.Equal(t, 123_000_000, got.Nanosecond())
}

func TestPartitionKeyMillis(t *testing.T) {
	ts := time.Date(2026, 1, 17, 2, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "2026-01-17", PartitionKeyMillis(ts))
}

func TestBuildBars(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	rows := []Row{
		{
			Ticker: "VALE3.SA",
			Time:   provider.RawTime{Wall: time.Date(2026, 1, 16, 13, 0, 0, 0, time.UTC), Zoned: true},
			Open:   v(61.1), High: v(62.0), Low: v(60.9), Close: v(61.7), AdjClose: v(61.5), Volume: v(1234567),
		},
		{
			Ticker: "VALE3.SA",
			Time:   provider.RawTime{Wall: time.Date(2026, 1, 16, 14, 0, 0, 0, time.UTC), Zoned: true},
			Close:  v(61.9),
		},
	}

	bars := BuildBars(rows)
	require.Len(t, bars, 2)

	full := bars[0]
	assert.Equal(t, "VALE3.SA", full.Ticker)
	assert.Equal(t, time.Date(2026, 1, 16, 13, 0, 0, 0, time.UTC).UnixMilli(), full.TradeTimestamp)
	assert.Equal(t, 61.7, full.Close)
	assert.Equal(t, 61.5, full.AdjClose)
	assert.Equal(t, int64(1234567), full.Volume)

	sparse := bars[1]
	assert.Equal(t, 61.9, sparse.Close)
	assert.True(t, math.IsNaN(sparse.Open))
	assert.True(t, math.IsNaN(sparse.AdjClose))
	assert.Equal(t, int64(0), sparse.Volume, "missing volume is coerced to 0")
}
