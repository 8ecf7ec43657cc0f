package saver

import (
	"encoding/csv"
	"io"
	"strconv"

	"b3-data/internal/model"
)

// CSVSaver encodes partitions as CSV
// (header: trade_timestamp,ticker,open,high,low,close,adj_close,volume).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Encode(bars []model.Bar, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"trade_timestamp", "ticker", "open", "high", "low", "close", "adj_close", "volume"}); err != nil {
		return err
	}
	for _, b := range bars {
		if err := cw.Write([]string{
			strconv.FormatInt(b.TradeTimestamp, 10),
			b.Ticker,
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			floatStr(b.AdjClose),
			strconv.FormatInt(b.Volume, 10),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
