// Package yahoo implements the daily-bar provider against the Yahoo Finance
// chart API.
package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"idxsignal/internal/domain/models"
	"idxsignal/internal/service/ratelimit"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Upstream pacing: burst of 5, refilled at 5 requests/second.
	rateKey       = "chart"
	rateCapacity  = 5.0
	rateRefillPer = 5.0
)

// Client fetches daily OHLCV series from the chart endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *ratelimit.Limiter
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithoutRateLimit disables upstream request pacing (used by tests).
func WithoutRateLimit() Option {
	return func(c *Client) {
		c.limiter = nil
	}
}

// NewClient creates a chart API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		limiter:    ratelimit.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDaily retrieves up to days daily bars for an already-normalized
// ticker, oldest first. Returns models.ErrNoData when the provider has no
// usable rows for the symbol.
func (c *Client) FetchDaily(ctx context.Context, ticker string, days int) ([]models.Bar, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, rateKey, rateCapacity, rateRefillPer); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(ticker), rangeForDays(days))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart request %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chart response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", models.ErrNoData, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request %s: status %d", ticker, resp.StatusCode)
	}

	bars, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parse chart %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoData, ticker)
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// rangeForDays approximates the provider range parameter for a requested
// day count.
func rangeForDays(days int) string {
	switch {
	case days <= 60:
		return "3mo"
	case days <= 120:
		return "6mo"
	case days <= 260:
		return "1y"
	default:
		return "2y"
	}
}

// parseChart extracts bars from a chart API payload. Rows with a missing
// open/high/low/close value are skipped, matching how the upstream marks
// non-trading sessions with nulls.
func parseChart(body []byte) ([]models.Bar, error) {
	doc := gjson.ParseBytes(body)

	if desc := doc.Get("chart.error.description"); desc.Exists() {
		return nil, fmt.Errorf("provider error: %s", desc.String())
	}

	result := doc.Get("chart.result.0")
	if !result.Exists() {
		return nil, nil
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]models.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(opens) || i >= len(highs) || i >= len(lows) || i >= len(closes) {
			break
		}
		if opens[i].Type == gjson.Null || highs[i].Type == gjson.Null ||
			lows[i].Type == gjson.Null || closes[i].Type == gjson.Null {
			continue
		}
		var volume float64
		if i < len(volumes) && volumes[i].Type != gjson.Null {
			volume = volumes[i].Float()
		}
		day := time.Unix(ts.Int(), 0).UTC()
		bars = append(bars, models.Bar{
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   opens[i].Float(),
			High:   highs[i].Float(),
			Low:    lows[i].Float(),
			Close:  closes[i].Float(),
			Volume: volume,
		})
	}
	return bars, nil
}
