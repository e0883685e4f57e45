package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// DailyBar is one trading day of a listed security as published by the exchange.
// Fields the exchange left blank or marked with a placeholder are invalid.
type DailyBar struct {
	Date        time.Time  `json:"date"`
	RawDate     string     `json:"raw_date"` // ROC date as published, e.g. "113/05/20"
	Open        null.Float `json:"open"`
	High        null.Float `json:"high"`
	Low         null.Float `json:"low"`
	Close       null.Float `json:"close"`
	Volume      null.Float `json:"volume"`       // shares traded
	Turnover    null.Float `json:"turnover"`     // NTD traded
	TradeCount  null.Float `json:"trade_count"`  // number of transactions
	PriceChange null.Float `json:"price_change"` // close-to-close change
}

// MonthKey identifies one (ticker, month) request to the exchange.
// Month is always the first day of the month in UTC.
type MonthKey struct {
	Code  string
	Month time.Time
}

// Param returns the month in the exchange's query format (YYYYMM01).
func (k MonthKey) Param() string {
	return k.Month.Format("20060102")
}

func (k MonthKey) String() string {
	return k.Code + "@" + k.Month.Format("2006-01")
}

// PriceSeries holds daily bars for one ticker, ascending by date with no
// duplicate dates, clipped to [Start, End].
type PriceSeries struct {
	Code  string     `json:"code"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Bars  []DailyBar `json:"bars"`
}

// Empty reports whether the series carries no trading days.
func (s *PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Last returns the most recent bar. It panics on an empty series.
func (s *PriceSeries) Last() DailyBar { return s.Bars[len(s.Bars)-1] }

// Closes returns the close column.
func (s *PriceSeries) Closes() []null.Float {
	out := make([]null.Float, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the share volume column.
func (s *PriceSeries) Volumes() []null.Float {
	out := make([]null.Float, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}
