package di

import (
	"fmt"
	"io"

	domrepo "idxsignal/internal/domain/repository"
	"idxsignal/internal/handler/api"
	"idxsignal/internal/service/yahoo"
	"idxsignal/internal/universe"
	"idxsignal/internal/usecase"
	"idxsignal/pkg/cache"
	"idxsignal/pkg/config"
	xhttp "idxsignal/pkg/http"
	applogger "idxsignal/pkg/logger"
	"idxsignal/pkg/metrics"
	"idxsignal/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCacheStore creates the bar cache backend selected by config.
func ProvideCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		store, err := cache.NewRedis(
			cache.WithAddr(cfg.Cache.Redis.Addr),
			cache.WithPassword(cfg.Cache.Redis.Password),
			cache.WithDB(cfg.Cache.Redis.DB),
			cache.WithPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return store, nil
	default:
		return cache.NewMemory(), nil
	}
}

// ProvideBarProvider creates the upstream market-data client.
func ProvideBarProvider(cfg *config.Config) domrepo.BarProvider {
	return yahoo.NewClient(
		yahoo.WithBaseURL(cfg.MarketData.BaseURL),
		yahoo.WithTimeout(cfg.MarketData.Timeout.Duration),
	)
}

// ProvideBarService creates the cached fetch path.
func ProvideBarService(provider domrepo.BarProvider, store cache.Store, m domrepo.Metrics, cfg *config.Config) *usecase.BarService {
	return usecase.NewBarService(provider, store, m, cfg.Cache.TTL.Duration, cfg.MarketData.FetchTimeout.Duration)
}

// ProvideSignalUseCase creates the signal classifier use case.
func ProvideSignalUseCase(bars *usecase.BarService) *usecase.SignalUseCase {
	return usecase.NewSignalUseCase(bars)
}

// ProvideRegimeUseCase creates the market regime classifier.
func ProvideRegimeUseCase(bars *usecase.BarService, l *applogger.Logger, cfg *config.Config) *usecase.RegimeUseCase {
	return usecase.NewRegimeUseCase(bars, l, cfg.Benchmark.Ticker, cfg.Benchmark.Days)
}

// ProvideUniverse loads the static ticker universes.
func ProvideUniverse(cfg *config.Config) (*universe.Universe, error) {
	u, err := universe.Load(cfg.Screener.UniverseFile)
	if err != nil {
		return nil, fmt.Errorf("universe: %w", err)
	}
	return u, nil
}

// ProvideScreenerUseCase creates the universe screener.
func ProvideScreenerUseCase(
	bars *usecase.BarService,
	regime *usecase.RegimeUseCase,
	uni *universe.Universe,
	l *applogger.Logger,
	m domrepo.Metrics,
	cfg *config.Config,
) *usecase.ScreenerUseCase {
	return usecase.NewScreenerUseCase(bars, regime, uni, l, m, cfg.Screener.Concurrency)
}

// ProvideMarketHandler creates the HTTP handler.
func ProvideMarketHandler(
	l *applogger.Logger,
	bars *usecase.BarService,
	signal *usecase.SignalUseCase,
	regime *usecase.RegimeUseCase,
	screener *usecase.ScreenerUseCase,
) xhttp.Handler {
	return api.NewMarketHandler(l, bars, signal, regime, screener)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler, store cache.Store) *server.App {
	var closers []io.Closer
	if c, ok := store.(io.Closer); ok {
		closers = append(closers, c)
	}
	return server.New(cfg, l, handler, closers...)
}
