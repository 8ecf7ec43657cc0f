package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b3-data/internal/provider"
)

func v(f float64) *float64 { return &f }

func zoned(sec int64) provider.RawTime {
	return provider.RawTime{Wall: time.Unix(sec, 0).UTC(), Zoned: true}
}

func TestFlattenGroupedColumns(t *testing.T) {
	f := &provider.RawFrame{
		Ticker: "VALE3.SA",
		Index:  []provider.RawTime{zoned(1_768_600_800), zoned(1_768_687_200)},
		Columns: map[string][]*float64{
			"VALE3.SA/open":     {v(61.0), v(61.5)},
			"VALE3.SA/high":     {v(62.0), v(62.2)},
			"VALE3.SA/low":      {v(60.5), v(61.1)},
			"VALE3.SA/close":    {v(61.7), v(61.9)},
			"VALE3.SA/adjclose": {v(61.4), v(61.6)},
			"VALE3.SA/volume":   {v(100), v(200)},
			// another symbol's group must not leak into this ticker
			"PETR4.SA/close": {v(38.0), v(38.1)},
		},
	}

	rows, dropped, err := Flatten(f)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "VALE3.SA", first.Ticker)
	assert.Equal(t, 61.0, *first.Open)
	assert.Equal(t, 61.7, *first.Close)
	assert.Equal(t, 61.4, *first.AdjClose)
	assert.Equal(t, float64(100), *first.Volume)
}

func TestFlattenFlatColumnSpellings(t *testing.T) {
	f := &provider.RawFrame{
		Ticker: "PETR4.SA",
		Index:  []provider.RawTime{zoned(1_768_600_800)},
		Columns: map[string][]*float64{
			"Close":     {v(38.2)},
			"Adj Close": {v(38.0)},
			"VOLUME":    {v(500)},
			"dividends": {v(0.5)}, // outside the target set, ignored
		},
	}

	rows, dropped, err := Flatten(f)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, rows, 1)
	assert.Equal(t, 38.2, *rows[0].Close)
	assert.Equal(t, 38.0, *rows[0].AdjClose)
	assert.Equal(t, float64(500), *rows[0].Volume)
	assert.Nil(t, rows[0].Open)
}

func TestFlattenMissingCloseColumn(t *testing.T) {
	f := &provider.RawFrame{
		Ticker:  "VALE3.SA",
		Index:   []provider.RawTime{zoned(1_768_600_800)},
		Columns: map[string][]*float64{"VALE3.SA/open": {v(61.0)}},
	}

	_, _, err := Flatten(f)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestFlattenMissingIndex(t *testing.T) {
	_, _, err := Flatten(&provider.RawFrame{Ticker: "VALE3.SA"})
	require.ErrorIs(t, err, ErrSchemaMismatch)

	_, _, err = Flatten(nil)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestFlattenDropsRowsWithoutClose(t *testing.T) {
	f := &provider.RawFrame{
		Ticker: "VALE3.SA",
		Index:  []provider.RawTime{zoned(1), zoned(2), zoned(3)},
		Columns: map[string][]*float64{
			"close": {v(61.0), nil, v(61.5)},
		},
	}

	rows, dropped, err := Flatten(f)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, rows, 2)
	assert.Equal(t, 61.0, *rows[0].Close)
	assert.Equal(t, 61.5, *rows[1].Close)
}

func TestFlattenToleratesShortColumns(t *testing.T) {
	f := &provider.RawFrame{
		Ticker: "VALE3.SA",
		Index:  []provider.RawTime{zoned(1), zoned(2)},
		Columns: map[string][]*float64{
			"close": {v(61.0), v(61.5)},
			"open":  {v(60.5)}, // padded short by the source
		},
	}

	rows, dropped, err := Flatten(f)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, rows, 2)
	assert.NotNil(t, rows[0].Open)
	assert.Nil(t, rows[1].Open)
}

func BenchmarkFlatten(b *testing.B) {
	const n = 5000
	index := make([]provider.RawTime, n)
	closes := make([]*float64, n)
	vols := make([]*float64, n)
	for i := range index {
		index[i] = zoned(int64(i) * 60)
		closes[i] = v(61.0)
		vols[i] = v(100)
	}
	f := &provider.RawFrame{
		Ticker: "VALE3.SA",
		Index:  index,
		Columns: map[string][]*float64{
			"VALE3.SA/close":  closes,
			"VALE3.SA/volume": vols,
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Flatten(f); err != nil {
			b.Fatal(err)
		}
	}
}
