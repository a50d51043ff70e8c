package repository

import (
	"context"

	"idxsignal/internal/domain/models"
)

// BarProvider retrieves daily bars for a normalized ticker from the upstream
// market-data source. Implementations own authentication, retries and rate
// limiting; callers own caching and timeouts.
type BarProvider interface {
	FetchDaily(ctx context.Context, ticker string, days int) ([]models.Bar, error)
}

// Metrics abstracts operational counters so use cases stay decoupled from the
// metrics backend.
type Metrics interface {
	RecordFetch(status string)
	RecordCacheResult(result string)
	RecordTickerFailure()
	RecordLatency(op string, seconds float64)
}
