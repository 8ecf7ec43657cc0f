package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"b3-data/internal/provider"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches bar history from the Yahoo Finance chart API, one request
// per ticker. The API returns the whole requested range in a single
// response, so there is no pagination and no retry logic here.
type Client struct {
	BaseURL   string
	UserAgent string
	client    *http.Client
}

// NewClient constructs a Client with a shared HTTP client.
func NewClient() *Client {
	return &Client{
		BaseURL:   defaultBaseURL,
		UserAgent: "b3-data/1.0",
		client:    newHTTPClient(),
	}
}

// Name returns the source name.
func (c *Client) Name() string { return "YahooChart" }

// Close closes connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Fetch retrieves raw rows for one ticker. Transport failures, non-200
// statuses and chart-level errors map to ErrSourceUnavailable; an unknown
// symbol or an empty window maps to ErrNoData.
func (c *Client) Fetch(ctx context.Context, ticker string, win provider.Window) (*provider.RawFrame, error) {
	req, err := c.buildChartRequest(ctx, ticker, win)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", provider.ErrSourceUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", provider.ErrNoData, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", provider.ErrSourceUnavailable, resp.StatusCode, body)
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", provider.ErrSourceUnavailable, err)
	}

	if e := cr.Chart.Error; e != nil {
		if e.notFound() {
			return nil, fmt.Errorf("%w: %s: %s", provider.ErrNoData, ticker, e.Description)
		}
		return nil, fmt.Errorf("%w: %s: %s", provider.ErrSourceUnavailable, e.Code, e.Description)
	}
	if len(cr.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", provider.ErrNoData, ticker)
	}

	frame := toRawFrame(ticker, &cr.Chart.Result[0])
	if len(frame.Index) == 0 {
		return nil, fmt.Errorf("%w: %s: empty window", provider.ErrNoData, ticker)
	}
	return frame, nil
}

// buildChartRequest builds the GET request for one ticker. Explicit windows
// become period1/period2 epoch bounds (end exclusive); otherwise the
// relative range token is passed through.
func (c *Client) buildChartRequest(ctx context.Context, ticker string, win provider.Window) (*http.Request, error) {
	u, err := url.Parse(c.BaseURL + "/v8/finance/chart/" + url.PathEscape(ticker))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("interval", win.Interval)
	q.Set("includeAdjustedClose", "true")
	if win.Explicit() {
		q.Set("period1", strconv.FormatInt(win.Start.Unix(), 10))
		q.Set("period2", strconv.FormatInt(win.End.Unix(), 10))
	} else {
		q.Set("range", win.Period)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func unixUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
