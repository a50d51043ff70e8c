package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"idxsignal/internal/domain/models"
)

func newRegime(t *testing.T, provider *stubProvider) *RegimeUseCase {
	t.Helper()
	return NewRegimeUseCase(newBarService(provider), newTestLogger(t), "^JKSE", 260)
}

func TestRegimeRiskOn(t *testing.T) {
	provider := &stubProvider{bars: map[string][]models.Bar{
		"^JKSE": uptrendBars(60, 100, 1, 1000),
	}}
	reg := newRegime(t, provider).Evaluate(context.Background())

	if reg.Status != models.RegimeRiskOn {
		t.Fatalf("status = %s, want %s", reg.Status, models.RegimeRiskOn)
	}
	if reg.Ticker != "^JKSE" {
		t.Fatalf("ticker = %s, want ^JKSE", reg.Ticker)
	}
	if reg.Close == nil || *reg.Close != 159 {
		t.Fatalf("close = %v, want 159", reg.Close)
	}
	if reg.DayChangePct == nil || *reg.DayChangePct != 0.63 {
		t.Fatalf("day_change_pct = %v, want 0.63", reg.DayChangePct)
	}
	if len(reg.Notes) != 1 || !strings.Contains(reg.Notes[0], "uptrend") {
		t.Fatalf("unexpected notes: %v", reg.Notes)
	}
}

func TestRegimeRiskOff(t *testing.T) {
	// Calm decline: below MA50 but low volatility and a tiny daily change, so
	// the no-trade override must not fire.
	provider := &stubProvider{bars: map[string][]models.Bar{
		"^JKSE": downtrendBars(60, 200, 0.1, 1000),
	}}
	reg := newRegime(t, provider).Evaluate(context.Background())

	if reg.Status != models.RegimeRiskOff {
		t.Fatalf("status = %s, want %s", reg.Status, models.RegimeRiskOff)
	}
	if len(reg.Notes) != 1 || !strings.Contains(reg.Notes[0], "below MA50") {
		t.Fatalf("unexpected notes: %v", reg.Notes)
	}
}

func TestRegimeNoTradeDayOverride(t *testing.T) {
	// Same calm decline, but the latest session drops over 5%: the sharp-drop
	// override wins over plain risk-off.
	bars := downtrendBars(60, 200, 0.1, 1000)
	bars[59] = testBar(59, 194, 194.5, 183, 184, 1000)
	provider := &stubProvider{bars: map[string][]models.Bar{"^JKSE": bars}}
	reg := newRegime(t, provider).Evaluate(context.Background())

	if reg.Status != models.RegimeNoTradeDay {
		t.Fatalf("status = %s, want %s", reg.Status, models.RegimeNoTradeDay)
	}
	if len(reg.Notes) != 1 || !strings.Contains(reg.Notes[0], "prefer no trade") {
		t.Fatalf("unexpected notes: %v", reg.Notes)
	}
	if reg.DayChangePct == nil || *reg.DayChangePct > -2 {
		t.Fatalf("day_change_pct = %v, expected a drop past -2", reg.DayChangePct)
	}
}

func TestRegimeNeutral(t *testing.T) {
	// Close recovered above MA50 while MA20 still lags below it: neither
	// trend condition holds.
	bars := make([]models.Bar, 60)
	for i := range bars {
		price := 120.0
		if i >= 40 {
			price = 100
		}
		bars[i] = testBar(i, price, price+0.5, price-0.5, price, 1000)
	}
	bars[59] = testBar(59, 100, 113.5, 99.5, 113, 1000)
	provider := &stubProvider{bars: map[string][]models.Bar{"^JKSE": bars}}
	reg := newRegime(t, provider).Evaluate(context.Background())

	if reg.Status != models.RegimeNeutral {
		t.Fatalf("status = %s, want %s", reg.Status, models.RegimeNeutral)
	}
}

func TestRegimeUnknownOnFetchFailure(t *testing.T) {
	provider := &stubProvider{errs: map[string]error{
		"^JKSE": fmt.Errorf("upstream unreachable"),
	}}
	reg := newRegime(t, provider).Evaluate(context.Background())

	if reg.Status != models.RegimeUnknown {
		t.Fatalf("status = %s, want %s", reg.Status, models.RegimeUnknown)
	}
	if reg.Close != nil || reg.MA20 != nil || reg.MA50 != nil {
		t.Fatalf("numeric fields must be nil when UNKNOWN")
	}
	if len(reg.Notes) != 1 || !strings.Contains(reg.Notes[0], "benchmark data unavailable") {
		t.Fatalf("unexpected notes: %v", reg.Notes)
	}
}
