package models

// Setup is the classified trading pattern for a single series.
type Setup string

const (
	SetupNone         Setup = "NONE"
	SetupBreakout     Setup = "BREAKOUT"
	SetupPullbackMA20 Setup = "PULLBACK_MA20"
)

// RiskReward expresses the targets as multiples of the entry-to-stop distance.
// Present only when entry > stop-loss.
type RiskReward struct {
	RiskPerShare float64  `json:"risk_per_share"`
	RMultipleTP1 *float64 `json:"r_multiple_tp1"`
	RMultipleTP2 *float64 `json:"r_multiple_tp2"`
}

// Signal is the full classification result for the latest bar of a series.
// Entry/SL/TP levels are nil when Setup is NONE.
type Signal struct {
	Setup       Setup       `json:"setup"`
	TrendOK     bool        `json:"trend_ok"`
	Close       float64     `json:"close"`
	MA20        float64     `json:"ma20"`
	MA50        float64     `json:"ma50"`
	Resistance  float64     `json:"resistance"`
	Support     float64     `json:"support"`
	Volume      float64     `json:"volume"`
	VolMA20     float64     `json:"volma20"`
	Entry       *float64    `json:"entry"`
	StopLoss    *float64    `json:"sl"`
	TakeProfit1 *float64    `json:"tp1"`
	TakeProfit2 *float64    `json:"tp2"`
	RiskReward  *RiskReward `json:"rr"`
	Reasons     []string    `json:"reason"`
	AsOf        string      `json:"asof"`
}
