package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"b3-data/internal/provider"
)

const dateLayout = "2006-01-02"

// periodRe matches relative period tokens ("7d", "1mo", "2y", ...);
// "max" and "ytd" are accepted separately.
var periodRe = regexp.MustCompile(`^\d+(m|d|wk|w|mo|y)$`)

// longPeriodRe captures period tokens likely to exceed the source's intraday
// history window (months / years).
var longPeriodRe = regexp.MustCompile(`^(\d+)(mo|y)$`)

var intradayIntervals = map[string]bool{
	"1m": true, "2m": true, "5m": true, "15m": true, "30m": true, "60m": true, "90m": true,
}

// Request is the input of one ingestion run: tickers, time window and
// granularity. It is owned by the orchestrator for the duration of the run
// and never persisted.
type Request struct {
	Tickers   []string `validate:"required,min=1,dive,required"`
	Period    string   `validate:"required_without=Date,omitempty,period"`
	Interval  string   `validate:"required,oneof=1m 2m 5m 15m 30m 60m 90m 1d 1wk 1mo"`
	Date      string   `validate:"omitempty,datetime=2006-01-02"`
	StartDate string   `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `validate:"omitempty,datetime=2006-01-02"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// period: chart-API range tokens plus the max/ytd specials
	_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "max" || s == "ytd" || periodRe.MatchString(s)
	})
	return v
}

// Validate checks field formats and the cross-field rules: Date is mutually
// exclusive with StartDate/EndDate, and an explicit range must not end
// before it starts.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Date != "" && (r.StartDate != "" || r.EndDate != "") {
		return fmt.Errorf("date cannot be combined with start/end dates")
	}
	if r.StartDate != "" && r.EndDate != "" {
		start, _ := time.Parse(dateLayout, r.StartDate)
		end, _ := time.Parse(dateLayout, r.EndDate)
		if end.Before(start) {
			return fmt.Errorf("end date %s before start date %s", r.EndDate, r.StartDate)
		}
	}
	return nil
}

// Window resolves the request into the fetch window. Explicit dates are
// inclusive on input; the end bound becomes exclusive (+1 day) for the
// source. EndDate defaults to StartDate for a single-day range.
func (r Request) Window() provider.Window {
	w := provider.Window{Interval: r.Interval, Period: r.Period}
	switch {
	case r.Date != "":
		start, _ := time.Parse(dateLayout, r.Date)
		w.Start = start.UTC()
		w.End = w.Start.AddDate(0, 0, 1)
		w.Period = ""
	case r.StartDate != "":
		start, _ := time.Parse(dateLayout, r.StartDate)
		end := start
		if r.EndDate != "" {
			end, _ = time.Parse(dateLayout, r.EndDate)
		}
		w.Start = start.UTC()
		w.End = end.UTC().AddDate(0, 0, 1)
		w.Period = ""
	}
	return w
}

// LikelyTruncated reports whether an intraday interval is combined with a
// period long enough that the source will probably cap the history. Worth a
// warning, never a failure.
func (r Request) LikelyTruncated() bool {
	if !intradayIntervals[r.Interval] || r.Date != "" || r.StartDate != "" {
		return false
	}
	if r.Period == "max" || r.Period == "ytd" {
		return true
	}
	m := longPeriodRe.FindStringSubmatch(r.Period)
	if m == nil {
		return false
	}
	if m[2] == "y" {
		return true
	}
	months, _ := strconv.Atoi(m[1])
	return months > 6
}
