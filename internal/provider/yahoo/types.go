package yahoo

import (
	"strings"

	"b3-data/internal/provider"
)

// chartResponse is the envelope of /v8/finance/chart. Exactly one of
// Chart.Result or Chart.Error is populated.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// notFound reports whether the API error means "unknown symbol / no data",
// as opposed to a source-side failure.
func (e *apiError) notFound() bool {
	return strings.EqualFold(e.Code, "not found")
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"` // Unix seconds
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol               string `json:"symbol"`
	Currency             string `json:"currency"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	GMTOffset            int    `json:"gmtoffset"`
}

// indicators nests the value columns one level below the result: quote
// blocks with OHLCV arrays plus an optional adjclose block.
type indicators struct {
	Quote    []quoteBlock `json:"quote"`
	Adjclose []adjBlock   `json:"adjclose"`
}

type quoteBlock struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type adjBlock struct {
	Adjclose []*float64 `json:"adjclose"`
}

// toRawFrame maps one chart result into the provider frame. The source
// groups value arrays under the symbol, so columns keep that outer level
// ("<SYMBOL>/close"); the schema normalizer is responsible for dropping it.
// Timestamps are Unix seconds, i.e. timezone-aware instants.
func toRawFrame(ticker string, res *chartResult) *provider.RawFrame {
	sym := res.Meta.Symbol
	if sym == "" {
		sym = ticker
	}

	index := make([]provider.RawTime, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		index[i] = provider.RawTime{Wall: unixUTC(ts), Zoned: true}
	}

	cols := make(map[string][]*float64, 6)
	if len(res.Indicators.Quote) > 0 {
		q := res.Indicators.Quote[0]
		cols[sym+"/open"] = q.Open
		cols[sym+"/high"] = q.High
		cols[sym+"/low"] = q.Low
		cols[sym+"/close"] = q.Close
		cols[sym+"/volume"] = q.Volume
	}
	if len(res.Indicators.Adjclose) > 0 {
		cols[sym+"/adjclose"] = res.Indicators.Adjclose[0].Adjclose
	}

	return &provider.RawFrame{Ticker: ticker, Index: index, Columns: cols}
}
