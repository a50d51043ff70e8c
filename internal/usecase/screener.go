package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"idxsignal/internal/domain/models"
	domrepo "idxsignal/internal/domain/repository"
	"idxsignal/internal/universe"
	xlogger "idxsignal/pkg/logger"
)

const (
	defaultScreenerWorkers = 8
	maxScreenerWorkers     = 20

	scoreTrendOK     = 2
	scoreBreakout    = 3
	scorePullback    = 2
	scoreVolumeAbove = 1

	topN = 25
)

// ScreenerUseCase scans a ticker universe with a bounded worker pool and
// ranks the members by setup score. One regime evaluation covers the whole
// batch.
type ScreenerUseCase struct {
	bars     *BarService
	regime   *RegimeUseCase
	universe *universe.Universe
	logger   *xlogger.Logger
	metrics  domrepo.Metrics
	workers  int
}

func NewScreenerUseCase(
	bars *BarService,
	regime *RegimeUseCase,
	uni *universe.Universe,
	logger *xlogger.Logger,
	metrics domrepo.Metrics,
	workers int,
) *ScreenerUseCase {
	if workers <= 0 {
		workers = defaultScreenerWorkers
	}
	if workers > maxScreenerWorkers {
		workers = maxScreenerWorkers
	}
	return &ScreenerUseCase{
		bars:     bars,
		regime:   regime,
		universe: uni,
		logger:   logger,
		metrics:  metrics,
		workers:  workers,
	}
}

// Run screens every ticker in the named universe. Per-ticker failures are
// logged, counted and dropped; only an unknown universe name is an error.
func (uc *ScreenerUseCase) Run(ctx context.Context, universeName string, days int) (*models.ScreenerResult, error) {
	universeName = strings.ToUpper(universeName)
	tickers, err := uc.universe.Tickers(universeName)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	regime := uc.regime.Evaluate(ctx)

	// Indexed slots keep the universe order so equal scores rank stably.
	slots := make([]*models.ScreenerRow, len(tickers))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				row, err := uc.screenOne(ctx, tickers[i], days)
				if err != nil {
					uc.metrics.RecordTickerFailure()
					uc.logger.Warn("screener: ticker skipped",
						xlogger.String("ticker", tickers[i]),
						xlogger.Error(err),
					)
					continue
				}
				slots[i] = &row
			}
		}()
	}
	for i := range tickers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	rows := make([]models.ScreenerRow, 0, len(tickers))
	for _, row := range slots {
		if row != nil {
			rows = append(rows, *row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	top := rows
	if len(top) > topN {
		top = top[:topN]
	}

	uc.metrics.RecordLatency("screener", time.Since(start).Seconds())
	uc.logger.Info("screener run complete",
		xlogger.String("universe", universeName),
		xlogger.Int("scanned", len(tickers)),
		xlogger.Int("ranked", len(rows)),
	)

	return &models.ScreenerResult{
		Universe:     universeName,
		MarketRegime: regime,
		Count:        len(rows),
		Top:          top,
	}, nil
}

func (uc *ScreenerUseCase) screenOne(ctx context.Context, ticker string, days int) (models.ScreenerRow, error) {
	bars, err := uc.bars.GetBars(ctx, ticker, days)
	if err != nil {
		return models.ScreenerRow{}, err
	}
	sig, err := ComputeSignal(bars)
	if err != nil {
		return models.ScreenerRow{}, err
	}

	score := 0
	if sig.TrendOK {
		score += scoreTrendOK
	}
	switch sig.Setup {
	case models.SetupBreakout:
		score += scoreBreakout
	case models.SetupPullbackMA20:
		score += scorePullback
	}
	if sig.Volume > 0 && sig.VolMA20 > 0 && sig.Volume > sig.VolMA20 {
		score += scoreVolumeAbove
	}

	return models.ScreenerRow{
		Ticker:     models.NormalizeTicker(ticker),
		Score:      score,
		Setup:      sig.Setup,
		Close:      sig.Close,
		Resistance: sig.Resistance,
		Support:    sig.Support,
		AsOf:       sig.AsOf,
		Reasons:    sig.Reasons,
	}, nil
}
