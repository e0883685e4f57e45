package calculator

import (
	"github.com/guregu/null/v6"

	"TWStockBoard/internal/model"
)

// Periods of the moving averages the dashboard charts.
var (
	DefaultMAPeriods     = []int{5, 20, 60}
	DefaultVolumePeriods = []int{5, 20}
)

// Annotate computes the default indicator set over a series. Each column
// reads only the raw close or volume column, so the order of derivation does
// not matter.
func Annotate(series model.PriceSeries) model.Indicators {
	closes := series.Closes()
	volumes := series.Volumes()

	ind := model.Indicators{
		MA:       make(map[int][]null.Float, len(DefaultMAPeriods)),
		VolumeMA: VolumeMovingAverages(volumes, DefaultVolumePeriods...),
		RSI:      RSI(closes, DefaultRSIPeriod),
	}
	for _, p := range DefaultMAPeriods {
		ind.MA[p] = MovingAverage(closes, p)
	}
	ind.MACD, ind.Signal, ind.Histogram = MACD(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	ind.BBUpper, ind.BBMiddle, ind.BBLower = Bollinger(closes, DefaultBollingerPeriod, DefaultBollingerK)
	return ind
}
