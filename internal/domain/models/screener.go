package models

// ScreenerRow is one ranked universe member.
type ScreenerRow struct {
	Ticker     string   `json:"ticker"`
	Score      int      `json:"score"`
	Setup      Setup    `json:"setup"`
	Close      float64  `json:"close"`
	Resistance float64  `json:"resistance"`
	Support    float64  `json:"support"`
	AsOf       string   `json:"asof"`
	Reasons    []string `json:"reason"`
}

// ScreenerResult is the batch outcome: the regime snapshot plus the ranked
// shortlist. Count is the number of tickers that classified successfully,
// before the top-N truncation.
type ScreenerResult struct {
	Universe     string        `json:"universe"`
	MarketRegime Regime        `json:"market_regime"`
	Count        int           `json:"count"`
	Top          []ScreenerRow `json:"top"`
}
