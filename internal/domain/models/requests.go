package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.
// Day-count bounds differ per operation and are enforced before any fetch.

type BarsRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
	Days   int    `query:"days" json:"days" default:"240" validate:"gte=30,lte=520"`
}

type SignalRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
	Days   int    `query:"days" json:"days" default:"240" validate:"gte=60,lte=520"`
}

type ScreenerRequest struct {
	Universe string `query:"universe" json:"universe" default:"LQ45"`
	Days     int    `query:"days" json:"days" default:"240" validate:"gte=90,lte=520"`
}
