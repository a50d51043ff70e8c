package models

// RegimeStatus is the market-wide risk classification.
type RegimeStatus string

const (
	RegimeRiskOn     RegimeStatus = "RISK_ON"
	RegimeRiskOff    RegimeStatus = "RISK_OFF"
	RegimeNoTradeDay RegimeStatus = "NO_TRADE_DAY"
	RegimeNeutral    RegimeStatus = "NEUTRAL"
	RegimeUnknown    RegimeStatus = "UNKNOWN"
)

// Regime describes the benchmark index state. Numeric fields are nil when the
// benchmark series could not be obtained (Status UNKNOWN).
type Regime struct {
	Status       RegimeStatus `json:"status"`
	Close        *float64     `json:"close"`
	MA20         *float64     `json:"ma20"`
	MA50         *float64     `json:"ma50"`
	DayChangePct *float64     `json:"day_change_pct"`
	ATR14Pct     *float64     `json:"atr14_pct"`
	AsOf         *string      `json:"asof"`
	Notes        []string     `json:"note"`
	Ticker       string       `json:"ticker"`
}
