// Package strategy turns indicator columns into the technical-analysis
// summary and headline badges shown alongside a price series.
package strategy

import (
	"TWStockBoard/internal/calculator"
	"TWStockBoard/internal/model"
)

// RSI zone thresholds.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// lastValidRow returns the latest row where both RSI and MACD are defined.
func lastValidRow(ind model.Indicators) (int, bool) {
	for i := min(len(ind.RSI), len(ind.MACD)) - 1; i >= 0; i-- {
		if ind.RSI[i].Valid && ind.MACD[i].Valid {
			return i, true
		}
	}
	return 0, false
}

// Summarize evaluates the summary on the latest row where RSI and MACD are
// both defined. It reports false when no such row exists.
func Summarize(series model.PriceSeries, ind model.Indicators) (*model.Summary, bool) {
	i, ok := lastValidRow(ind)
	if !ok || i >= len(series.Bars) {
		return nil, false
	}
	row := snapshotAt(series, ind, i)
	return &model.Summary{
		Date:  series.Bars[i].Date,
		Close: row.close.Float64,
		RSI:   row.rsi,
		Lines: []model.SignalLine{
			judgeTrend(row),
			judgeAlignment(row),
			judgeRSI(row),
			judgeMACD(row),
		},
	}, true
}

// Badges returns the headline numbers of the last trading day plus the high
// and low over the whole series. It reports false for an empty series.
func Badges(series model.PriceSeries, ind model.Indicators) (*model.Badges, bool) {
	if series.Empty() {
		return nil, false
	}
	last := series.Last()
	b := &model.Badges{
		Date:   last.Date,
		Close:  last.Close.Float64,
		High:   last.High.Float64,
		Low:    last.Low.Float64,
		Volume: last.Volume.Float64,
	}
	if n := len(ind.RSI); n == len(series.Bars) && ind.RSI[n-1].Valid {
		b.RSI = ind.RSI[n-1].Float64
		b.RSIValid = true
	}
	if high, low, err := calculator.PeriodRange(series.Bars); err == nil {
		b.PeriodHigh, b.PeriodLow = high, low
	}
	return b, true
}
