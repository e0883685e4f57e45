package model

import "time"

// Bias is the direction a summary line points to.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// SignalLine is one judgement of the technical summary.
type SignalLine struct {
	Name       string `json:"name"`
	Bias       Bias   `json:"bias"`
	Commentary string `json:"commentary"`
}

// Summary is the technical-analysis verdict on the latest fully-defined row.
type Summary struct {
	Date  time.Time    `json:"date"`
	Close float64      `json:"close"`
	RSI   float64      `json:"rsi"`
	Lines []SignalLine `json:"lines"`
}

// Badges are the headline numbers of the latest trading day.
type Badges struct {
	Date       time.Time `json:"date"`
	Close      float64   `json:"close"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Volume     float64   `json:"volume"`
	RSI        float64   `json:"rsi"`
	RSIValid   bool      `json:"rsi_valid"`
	PeriodHigh float64   `json:"period_high"`
	PeriodLow  float64   `json:"period_low"`
}
