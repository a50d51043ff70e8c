package indicators

import (
	"math"
	"testing"
	"time"

	"idxsignal/internal/domain/models"
)

func bar(day int, open, high, low, close, volume float64) models.Bar {
	return models.Bar{
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}
}

func TestSMAConstantSeries(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 42.5
	}
	out := SMA(values, 20)
	if len(out) != len(values) {
		t.Fatalf("length mismatch: %d != %d", len(out), len(values))
	}
	for i := 0; i < 19; i++ {
		if !math.IsNaN(out[i]) {
			t.Fatalf("position %d: expected NaN during warm-up, got %v", i, out[i])
		}
	}
	for i := 19; i < len(out); i++ {
		if out[i] != 42.5 {
			t.Fatalf("position %d: expected 42.5, got %v", i, out[i])
		}
	}
}

func TestSMARolling(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{math.NaN(), math.NaN(), 2, 3, 4}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(out[i]) {
				t.Fatalf("position %d: expected NaN, got %v", i, out[i])
			}
			continue
		}
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}

func TestRSIWithinBounds(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 103, 104, 108, 107, 110, 109,
		111, 108, 112, 115, 113, 116, 114, 118, 117, 120}
	out := RSI(closes, 14)
	defined := 0
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		defined++
		if v < 0 || v > 100 {
			t.Fatalf("position %d: RSI %v out of [0,100]", i, v)
		}
	}
	if defined == 0 {
		t.Fatalf("expected at least one defined RSI value")
	}
}

func TestRSIUndefinedWhenNoLosses(t *testing.T) {
	// Strictly rising closes: mean loss is zero, so RSI stays undefined
	// instead of pinning at 100.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	out := RSI(closes, 14)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Fatalf("position %d: expected NaN for loss-free series, got %v", i, v)
		}
	}
}

func TestATRFlatSeriesIsZero(t *testing.T) {
	bars := make([]models.Bar, 20)
	for i := range bars {
		bars[i] = bar(i, 100, 100, 100, 100, 1000)
	}
	out := ATR(bars, 14)
	for i := 13; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("position %d: expected zero ATR for flat series, got %v", i, out[i])
		}
	}
}

func TestATRNonNegativeAndGapAware(t *testing.T) {
	bars := []models.Bar{
		bar(0, 100, 102, 99, 101, 1000),
		bar(1, 110, 112, 109, 111, 1000), // gap up: TR must use prev close
		bar(2, 111, 113, 110, 112, 1000),
	}
	tr := TrueRange(bars)
	if tr[0] != 3 {
		t.Fatalf("first bar TR should be high-low: got %v", tr[0])
	}
	if tr[1] != 11 { // high 112 - prev close 101
		t.Fatalf("gap bar TR should use prev close: got %v", tr[1])
	}
	for i, v := range tr {
		if v < 0 {
			t.Fatalf("position %d: negative true range %v", i, v)
		}
	}
}

func TestPivotHighExcludesLatestBar(t *testing.T) {
	bars := make([]models.Bar, 30)
	for i := range bars {
		bars[i] = bar(i, 100, 105, 95, 100, 1000)
	}
	// Latest bar spikes far above everything; resistance must ignore it.
	bars[29] = bar(29, 100, 500, 95, 400, 1000)

	if got := PivotHigh(bars, 20); got != 105 {
		t.Fatalf("resistance must exclude latest bar: got %v, want 105", got)
	}
	bars[29] = bar(29, 100, 105, 1, 2, 1000)
	if got := PivotLow(bars, 20); got != 95 {
		t.Fatalf("support must exclude latest bar: got %v, want 95", got)
	}
}

func TestPivotShortSeriesUsesWholeRange(t *testing.T) {
	// Below lookback+2 bars the whole series, latest included, is the window.
	bars := []models.Bar{
		bar(0, 100, 110, 90, 100, 1000),
		bar(1, 100, 130, 80, 100, 1000),
	}
	if got := PivotHigh(bars, 20); got != 130 {
		t.Fatalf("short-series resistance: got %v, want 130", got)
	}
	if got := PivotLow(bars, 20); got != 80 {
		t.Fatalf("short-series support: got %v, want 80", got)
	}
}
