package usecase

import (
	"context"
	"fmt"
	"math"

	"idxsignal/internal/domain/models"
	"idxsignal/internal/indicators"
	xlogger "idxsignal/pkg/logger"
)

const (
	// Risk-off turns into a no-trade day when volatility or the daily drop
	// crosses these thresholds.
	noTradeATRPct     = 0.02
	noTradeDayChange  = -0.02
	regimeMinimumBars = 1
)

var (
	noteUptrend    = "Benchmark uptrend (Close>MA50 & MA20>MA50)"
	noteBelowMA50  = "Benchmark below MA50 (risk-off)"
	noteNoTradeDay = "Benchmark risk-off with high volatility/sharp drop - prefer no trade"
)

// RegimeUseCase classifies the market-wide risk regime from the benchmark
// index series.
type RegimeUseCase struct {
	bars   *BarService
	logger *xlogger.Logger
	ticker string
	days   int
}

func NewRegimeUseCase(bars *BarService, logger *xlogger.Logger, benchmarkTicker string, benchmarkDays int) *RegimeUseCase {
	return &RegimeUseCase{
		bars:   bars,
		logger: logger,
		ticker: models.NormalizeTicker(benchmarkTicker),
		days:   benchmarkDays,
	}
}

// Evaluate never fails: any problem obtaining or classifying the benchmark
// series degrades to status UNKNOWN with the cause in the notes. A partial
// answer is more useful to callers than an aborted request.
func (uc *RegimeUseCase) Evaluate(ctx context.Context) models.Regime {
	bars, err := uc.bars.GetBars(ctx, uc.ticker, uc.days)
	if err == nil && len(bars) < regimeMinimumBars {
		err = fmt.Errorf("degenerate series: %d bars", len(bars))
	}
	if err != nil {
		uc.logger.Warn("regime degraded to UNKNOWN",
			xlogger.String("ticker", uc.ticker),
			xlogger.Error(err),
		)
		return models.Regime{
			Status: models.RegimeUnknown,
			Notes:  []string{fmt.Sprintf("benchmark data unavailable: %v", err)},
			Ticker: uc.ticker,
		}
	}

	closes := models.Closes(bars)
	ma20s := indicators.SMA(closes, trendFastWindow)
	ma50s := indicators.SMA(closes, trendSlowWindow)
	atr14s := indicators.ATR(bars, atrWindow)

	last := len(bars) - 1
	latest := bars[last]
	prev := latest
	if len(bars) >= 2 {
		prev = bars[last-1]
	}

	close := latest.Close
	ma20 := fallback(ma20s[last], close)
	ma50 := fallback(ma50s[last], close)
	atr14 := fallback(atr14s[last], 0)

	trendOn := close > ma50 && ma20 > ma50
	trendOff := close < ma50

	var dayChange float64
	if prev.Close != 0 {
		dayChange = (close - prev.Close) / prev.Close
	}
	var atrPct float64
	if close != 0 {
		atrPct = atr14 / close
	}

	status := models.RegimeNeutral
	var notes []string
	switch {
	case trendOn:
		status = models.RegimeRiskOn
		notes = []string{noteUptrend}
	case trendOff:
		status = models.RegimeRiskOff
		notes = []string{noteBelowMA50}
	}

	// The no-trade override is evaluated last and always wins.
	if trendOff && (atrPct >= noTradeATRPct || dayChange <= noTradeDayChange) {
		status = models.RegimeNoTradeDay
		notes = []string{noteNoTradeDay}
	}

	asOf := latest.Date.Format(models.DateLayout)
	return models.Regime{
		Status:       status,
		Close:        ptr(close),
		MA20:         ptr(ma20),
		MA50:         ptr(ma50),
		DayChangePct: ptr(round2(dayChange * 100)),
		ATR14Pct:     ptr(round2(atrPct * 100)),
		AsOf:         &asOf,
		Notes:        notes,
		Ticker:       uc.ticker,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
