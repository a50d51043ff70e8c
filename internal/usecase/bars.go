package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"idxsignal/internal/domain/models"
	domrepo "idxsignal/internal/domain/repository"
	"idxsignal/pkg/cache"
)

// BarService is the read-through fetch path: normalize the ticker, consult
// the cache, fall back to the upstream provider, cache the result. All
// consumers (bars endpoint, signal, regime, screener) go through here so
// identical logical requests collide on the same cache key.
type BarService struct {
	provider     domrepo.BarProvider
	cache        cache.Store
	metrics      domrepo.Metrics
	ttl          time.Duration
	fetchTimeout time.Duration
}

func NewBarService(provider domrepo.BarProvider, store cache.Store, metrics domrepo.Metrics, ttl, fetchTimeout time.Duration) *BarService {
	return &BarService{
		provider:     provider,
		cache:        store,
		metrics:      metrics,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
	}
}

// GetBars returns up to days daily bars for a ticker, oldest first. The
// ticker is normalized before lookup; the cache returns a private copy, so
// callers may mutate the result freely.
func (s *BarService) GetBars(ctx context.Context, ticker string, days int) ([]models.Bar, error) {
	normalized := models.NormalizeTicker(ticker)
	key := fmt.Sprintf("ohlcv:%s:%d", normalized, days)

	var bars []models.Bar
	err := s.cache.Get(ctx, key, &bars)
	if err == nil && len(bars) > 0 {
		s.metrics.RecordCacheResult("hit")
		return bars, nil
	}
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		// Treat a broken cache read as a miss; the fetch below still works.
		s.metrics.RecordCacheResult("error")
	} else {
		s.metrics.RecordCacheResult("miss")
	}

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	bars, err = s.provider.FetchDaily(fetchCtx, normalized, days)
	if err != nil {
		s.metrics.RecordFetch("error")
		return nil, err
	}
	s.metrics.RecordFetch("ok")

	if err := s.cache.Set(ctx, key, bars, s.ttl); err != nil {
		s.metrics.RecordCacheResult("error")
	}
	return bars, nil
}
