// Package indicators holds the pure window computations over a daily bar
// series. Every function returns an output aligned to its input; positions
// where the rolling window is incomplete hold NaN. That warm-up NaN is a
// property of the data, not an error, and callers decide the fallback.
package indicators

import (
	"math"

	"idxsignal/internal/domain/models"
)

// SMA computes the trailing n-value simple moving average. The first n-1
// positions are NaN.
func SMA(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i := range values {
		sum += values[i]
		if i >= n {
			sum -= values[i-n]
		}
		if i >= n-1 {
			out[i] = sum / float64(n)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// RSI computes the n-period relative strength index from simple (unweighted)
// trailing means of gains and losses, not Wilder's exponential smoothing.
// A window whose mean loss is zero yields NaN, not 100.
func RSI(closes []float64, n int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) < 2 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	// Position i needs n deltas, i.e. closes i-n..i.
	for i := n; i < len(closes); i++ {
		var up, down float64
		for j := i - n + 1; j <= i; j++ {
			up += gains[j]
			down += losses[j]
		}
		up /= float64(n)
		down /= float64(n)
		if down == 0 {
			continue
		}
		rs := up / down
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// TrueRange computes the per-bar true range. The first bar has no previous
// close, so its true range is simply high-low.
func TrueRange(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i := range bars {
		hl := bars[i].High - bars[i].Low
		if i == 0 {
			out[i] = hl
			continue
		}
		prevClose := bars[i-1].Close
		out[i] = math.Max(hl, math.Max(
			math.Abs(bars[i].High-prevClose),
			math.Abs(bars[i].Low-prevClose),
		))
	}
	return out
}

// ATR computes the n-period average true range as a simple moving average of
// the true range. NaN during warm-up, >= 0 once defined.
func ATR(bars []models.Bar, n int) []float64 {
	return SMA(TrueRange(bars), n)
}

// PivotHigh returns the resistance level: the highest high over the lookback
// bars immediately preceding the latest bar (latest bar excluded). Histories
// under lookback+2 bars use the whole series, latest bar included.
func PivotHigh(bars []models.Bar, lookback int) float64 {
	if len(bars) < lookback+2 {
		high := math.Inf(-1)
		for i := range bars {
			high = math.Max(high, bars[i].High)
		}
		return high
	}
	window := bars[len(bars)-lookback-1 : len(bars)-1]
	high := math.Inf(-1)
	for i := range window {
		high = math.Max(high, window[i].High)
	}
	return high
}

// PivotLow returns the support level, symmetric to PivotHigh over lows.
func PivotLow(bars []models.Bar, lookback int) float64 {
	if len(bars) < lookback+2 {
		low := math.Inf(1)
		for i := range bars {
			low = math.Min(low, bars[i].Low)
		}
		return low
	}
	window := bars[len(bars)-lookback-1 : len(bars)-1]
	low := math.Inf(1)
	for i := range window {
		low = math.Min(low, window[i].Low)
	}
	return low
}
