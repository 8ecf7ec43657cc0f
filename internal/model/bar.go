package model

// Bar is one normalized OHLCV row in the fixed flat schema shared by the
// normalizer, aggregator and savers (parquet, csv, json).
// TradeTimestamp is always a UTC instant; values are never shifted to a
// display timezone before persistence.
type Bar struct {
	Ticker         string  `json:"ticker" parquet:"ticker"`
	TradeTimestamp int64   `json:"trade_timestamp" parquet:"trade_timestamp,timestamp(millisecond)"` // Unix milliseconds, UTC
	Open           float64 `json:"open" parquet:"open"`
	High           float64 `json:"high" parquet:"high"`
	Low            float64 `json:"low" parquet:"low"`
	Close          float64 `json:"close" parquet:"close"`
	AdjClose       float64 `json:"adj_close" parquet:"adj_close"`
	Volume         int64   `json:"volume" parquet:"volume"`
}
