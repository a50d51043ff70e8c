package usecase

import (
	"context"
	"math"
	"strings"
	"testing"

	"idxsignal/internal/domain/models"
)

func TestComputeSignalBreakout(t *testing.T) {
	// Steady uptrend, then the latest bar closes above the prior 20-day high
	// on twice the usual volume.
	bars := uptrendBars(60, 100, 1, 1000)
	bars[59] = testBar(59, 160, 166, 159, 165, 2000)

	sig, err := ComputeSignal(bars)
	if err != nil {
		t.Fatalf("ComputeSignal: %v", err)
	}

	if sig.Setup != models.SetupBreakout {
		t.Fatalf("setup = %s, want %s", sig.Setup, models.SetupBreakout)
	}
	if !sig.TrendOK {
		t.Fatalf("expected trend_ok")
	}
	if sig.Entry == nil || *sig.Entry != 165 {
		t.Fatalf("entry = %v, want 165", sig.Entry)
	}
	if sig.StopLoss == nil || *sig.StopLoss >= *sig.Entry {
		t.Fatalf("stop loss %v must sit below entry %v", sig.StopLoss, sig.Entry)
	}
	if sig.TakeProfit1 == nil || sig.TakeProfit2 == nil {
		t.Fatalf("both targets must be set")
	}
	if !(*sig.TakeProfit2 > *sig.TakeProfit1 && *sig.TakeProfit1 > *sig.Entry) {
		t.Fatalf("targets must stack above entry: tp1=%v tp2=%v", *sig.TakeProfit1, *sig.TakeProfit2)
	}

	// TP1 is one risk unit above entry, TP2 two: R multiples are exactly 1 and 2.
	if sig.RiskReward == nil {
		t.Fatalf("expected risk-reward block")
	}
	if got := *sig.RiskReward.RMultipleTP1; math.Abs(got-1) > 1e-9 {
		t.Fatalf("r_multiple_tp1 = %v, want 1", got)
	}
	if got := *sig.RiskReward.RMultipleTP2; math.Abs(got-2) > 1e-9 {
		t.Fatalf("r_multiple_tp2 = %v, want 2", got)
	}

	found := false
	for _, r := range sig.Reasons {
		if strings.Contains(r, "broke resistance") {
			found = true
		}
	}
	if !found {
		t.Fatalf("reasons missing breakout rationale: %v", sig.Reasons)
	}
	if sig.AsOf != "2024-02-29" {
		t.Fatalf("asof = %s, want 2024-02-29", sig.AsOf)
	}
}

func TestComputeSignalFlatSeriesIsNone(t *testing.T) {
	sig, err := ComputeSignal(flatBars(60, 100, 1000))
	if err != nil {
		t.Fatalf("ComputeSignal: %v", err)
	}
	if sig.TrendOK {
		t.Fatalf("flat series must not qualify as uptrend")
	}
	if sig.Setup != models.SetupNone {
		t.Fatalf("setup = %s, want %s", sig.Setup, models.SetupNone)
	}
	if sig.Entry != nil || sig.StopLoss != nil || sig.TakeProfit1 != nil || sig.TakeProfit2 != nil {
		t.Fatalf("levels must be nil for NONE")
	}
	if sig.RiskReward != nil {
		t.Fatalf("risk-reward must be nil for NONE")
	}
	if len(sig.Reasons) != 1 || !strings.Contains(sig.Reasons[0], "No clean setup") {
		t.Fatalf("unexpected reasons: %v", sig.Reasons)
	}
}

func TestComputeSignalPullback(t *testing.T) {
	// Gentle uptrend where the close stays under the rolling high and within
	// 2% of MA20, closing above the open.
	bars := uptrendBars(60, 100, 0.2, 1000)

	sig, err := ComputeSignal(bars)
	if err != nil {
		t.Fatalf("ComputeSignal: %v", err)
	}
	if sig.Setup != models.SetupPullbackMA20 {
		t.Fatalf("setup = %s, want %s", sig.Setup, models.SetupPullbackMA20)
	}
	if sig.TakeProfit1 == nil || math.Abs(*sig.TakeProfit1-sig.Resistance) > 1e-9 {
		t.Fatalf("pullback tp1 must be the resistance: got %v, resistance %v", sig.TakeProfit1, sig.Resistance)
	}
	if sig.StopLoss == nil || *sig.StopLoss > sig.MA20*0.98+1e-9 {
		t.Fatalf("pullback stop %v must not exceed 2%% under MA20 (%v)", sig.StopLoss, sig.MA20*0.98)
	}
	if sig.RiskReward == nil {
		t.Fatalf("expected risk-reward block")
	}
}

func TestComputeSignalBreakoutWinsOverPullback(t *testing.T) {
	// Latest bar satisfies both patterns: above the prior high on volume yet
	// still within 2% of MA20. Breakout takes priority.
	bars := uptrendBars(60, 100, 0.1, 1000)
	bars[59] = testBar(59, 106.5, 107.5, 106, 107, 2000)

	sig, err := ComputeSignal(bars)
	if err != nil {
		t.Fatalf("ComputeSignal: %v", err)
	}
	if sig.Setup != models.SetupBreakout {
		t.Fatalf("setup = %s, want %s", sig.Setup, models.SetupBreakout)
	}
}

func TestComputeSignalShortSeriesFallbacks(t *testing.T) {
	// Five bars cannot fill any indicator window: the averages degrade to the
	// close and the latest volume instead of leaking NaN into the response.
	bars := uptrendBars(5, 100, 1, 1000)

	sig, err := ComputeSignal(bars)
	if err != nil {
		t.Fatalf("ComputeSignal: %v", err)
	}
	if sig.MA20 != sig.Close || sig.MA50 != sig.Close {
		t.Fatalf("warm-up averages must fall back to close: ma20=%v ma50=%v close=%v", sig.MA20, sig.MA50, sig.Close)
	}
	if sig.VolMA20 != 1000 {
		t.Fatalf("warm-up volume average must fall back to latest volume: got %v", sig.VolMA20)
	}
	if sig.TrendOK {
		t.Fatalf("close equal to fallback MA50 must not count as uptrend")
	}
	if math.IsNaN(sig.MA20) || math.IsNaN(sig.MA50) || math.IsNaN(sig.VolMA20) {
		t.Fatalf("NaN leaked into signal: %+v", sig)
	}
}

func TestComputeSignalEmptySeries(t *testing.T) {
	if _, err := ComputeSignal(nil); err == nil {
		t.Fatalf("expected error for empty series")
	}
}

func TestGetSignalNormalizesTicker(t *testing.T) {
	provider := &stubProvider{bars: map[string][]models.Bar{
		"BBRI.JK": uptrendBars(60, 100, 1, 1000),
	}}
	uc := NewSignalUseCase(newBarService(provider))

	normalized, sig, err := uc.GetSignal(context.Background(), "bbri", 240)
	if err != nil {
		t.Fatalf("GetSignal: %v", err)
	}
	if normalized != "BBRI.JK" {
		t.Fatalf("normalized = %s, want BBRI.JK", normalized)
	}
	if sig.Close == 0 {
		t.Fatalf("expected a populated signal")
	}
}
