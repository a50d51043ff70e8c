package usecase

import (
	"context"
	"fmt"
	"math"

	"idxsignal/internal/domain/models"
	"idxsignal/internal/indicators"
)

const (
	trendFastWindow = 20
	trendSlowWindow = 50
	volumeWindow    = 20
	rsiWindow       = 14
	atrWindow       = 14
	pivotLookback   = 20

	// Pullback qualifies when close sits within 2% of MA20.
	pullbackMaxDistance = 0.02
	// Breakout stop sits 2 ATR under the close (or at support, whichever is lower).
	stopATRMultiple = 2.0
	// Pullback stop sits 2% under MA20 (or at support, whichever is lower).
	pullbackStopFactor = 0.98
)

var (
	reasonTrendOK        = "Trend OK (Close>MA50 & MA20>MA50)"
	reasonVolumeAbove    = "Volume above 20-day average"
	reasonNearMA20       = "Price near MA20 (healthy pullback)"
	reasonBullishCandle  = "Bullish candle (close >= open)"
	reasonNoCleanSetup   = "No clean setup (breakout / pullback)"
	reasonBrokeResFormat = "Close broke resistance ~%.2f"
)

// ComputeSignal classifies the latest bar of a series into a setup with risk
// levels. Pure computation; the only failure mode is an empty series, which
// callers are expected to rule out.
func ComputeSignal(bars []models.Bar) (models.Signal, error) {
	if len(bars) == 0 {
		return models.Signal{}, fmt.Errorf("empty bar series")
	}

	closes := models.Closes(bars)
	volumes := models.Volumes(bars)

	ma20s := indicators.SMA(closes, trendFastWindow)
	ma50s := indicators.SMA(closes, trendSlowWindow)
	volma20s := indicators.SMA(volumes, volumeWindow)
	atr14s := indicators.ATR(bars, atrWindow)

	last := len(bars) - 1
	latest := bars[last]
	close := latest.Close
	open := latest.Open

	volume := latest.Volume
	if math.IsNaN(volume) {
		volume = 0
	}

	// Warm-up fallbacks, one explicit policy per field: an undefined moving
	// average degrades to the close (neutral trend), undefined volume average
	// to the latest volume, undefined ATR to zero (no ATR stop).
	ma20 := fallback(ma20s[last], close)
	ma50 := fallback(ma50s[last], close)
	volma20 := fallback(volma20s[last], volume)
	atr14 := fallback(atr14s[last], 0)

	resistance := indicators.PivotHigh(bars, pivotLookback)
	support := indicators.PivotLow(bars, pivotLookback)

	trendOK := close > ma50 && ma20 > ma50
	breakout := trendOK && close > resistance && volume > volma20

	var distMA20 float64
	if ma20 != 0 {
		distMA20 = math.Abs(close-ma20) / ma20
	}
	pullback := trendOK && distMA20 <= pullbackMaxDistance && close >= open

	sig := models.Signal{
		Setup:      models.SetupNone,
		TrendOK:    trendOK,
		Close:      close,
		MA20:       ma20,
		MA50:       ma50,
		Resistance: resistance,
		Support:    support,
		Volume:     volume,
		VolMA20:    volma20,
		AsOf:       latest.Date.Format(models.DateLayout),
	}

	switch {
	case breakout:
		sig.Setup = models.SetupBreakout
		sl := support
		if atr14 > 0 {
			sl = math.Min(support, close-stopATRMultiple*atr14)
		}
		sig.Entry = ptr(close)
		sig.StopLoss = ptr(sl)
		sig.TakeProfit1 = ptr(close + (close - sl))
		sig.TakeProfit2 = ptr(close + 2*(close-sl))
		sig.Reasons = []string{
			reasonTrendOK,
			fmt.Sprintf(reasonBrokeResFormat, resistance),
			reasonVolumeAbove,
		}
	case pullback:
		sig.Setup = models.SetupPullbackMA20
		sl := math.Min(support, ma20*pullbackStopFactor)
		sig.Entry = ptr(close)
		sig.StopLoss = ptr(sl)
		sig.TakeProfit1 = ptr(resistance)
		sig.TakeProfit2 = ptr(resistance + (resistance - sl))
		sig.Reasons = []string{
			reasonTrendOK,
			reasonNearMA20,
			reasonBullishCandle,
		}
	default:
		sig.Reasons = []string{reasonNoCleanSetup}
	}

	if sig.Entry != nil && sig.StopLoss != nil && *sig.Entry > *sig.StopLoss {
		risk := *sig.Entry - *sig.StopLoss
		rr := &models.RiskReward{RiskPerShare: risk}
		if sig.TakeProfit1 != nil {
			rr.RMultipleTP1 = ptr((*sig.TakeProfit1 - *sig.Entry) / risk)
		}
		if sig.TakeProfit2 != nil {
			rr.RMultipleTP2 = ptr((*sig.TakeProfit2 - *sig.Entry) / risk)
		}
		sig.RiskReward = rr
	}

	return sig, nil
}

// SignalUseCase resolves a ticker to its classified signal.
type SignalUseCase struct {
	bars *BarService
}

func NewSignalUseCase(bars *BarService) *SignalUseCase {
	return &SignalUseCase{bars: bars}
}

// GetSignal fetches the series and classifies it. Returns the normalized
// ticker alongside the signal.
func (uc *SignalUseCase) GetSignal(ctx context.Context, ticker string, days int) (string, models.Signal, error) {
	normalized := models.NormalizeTicker(ticker)
	bars, err := uc.bars.GetBars(ctx, normalized, days)
	if err != nil {
		return normalized, models.Signal{}, err
	}
	sig, err := ComputeSignal(bars)
	if err != nil {
		return normalized, models.Signal{}, fmt.Errorf("classify %s: %w", normalized, err)
	}
	return normalized, sig, nil
}

func fallback(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}

func ptr(v float64) *float64 { return &v }
