package usecase

import (
	"context"
	"testing"
	"time"

	"idxsignal/internal/domain/models"
	"idxsignal/pkg/cache"
	xlogger "idxsignal/pkg/logger"
)

// stubProvider serves canned series keyed by normalized ticker.
type stubProvider struct {
	bars map[string][]models.Bar
	errs map[string]error
}

func (s *stubProvider) FetchDaily(_ context.Context, ticker string, days int) ([]models.Bar, error) {
	if err, ok := s.errs[ticker]; ok {
		return nil, err
	}
	bars, ok := s.bars[ticker]
	if !ok {
		return nil, models.ErrNoData
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string)            {}
func (nopMetrics) RecordCacheResult(string)      {}
func (nopMetrics) RecordTickerFailure()          {}
func (nopMetrics) RecordLatency(string, float64) {}

func newTestLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newBarService(p *stubProvider) *BarService {
	return NewBarService(p, cache.NewMemory(), nopMetrics{}, time.Minute, 0)
}

func testBar(day int, open, high, low, close, volume float64) models.Bar {
	return models.Bar{
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}
}

// uptrendBars produces n bars climbing by step per day with a fixed
// high/low envelope around the close and constant volume.
func uptrendBars(n int, start, step, volume float64) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		close := start + step*float64(i)
		bars[i] = testBar(i, close-step/2, close+1, close-1, close, volume)
	}
	return bars
}

func flatBars(n int, price, volume float64) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		bars[i] = testBar(i, price, price, price, price, volume)
	}
	return bars
}

func downtrendBars(n int, start, step, volume float64) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		close := start - step*float64(i)
		bars[i] = testBar(i, close+step/2, close+0.5, close-0.5, close, volume)
	}
	return bars
}
