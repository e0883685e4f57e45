package calculator

import (
	"math"

	"github.com/guregu/null/v6"
)

// Bollinger band defaults.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerK      = 2.0
)

// RollingStd returns the trailing sample standard deviation (n-1) over period rows.
func RollingStd(values []null.Float, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period < 2 {
		return out
	}
	window := make([]float64, 0, period)
	for i := range values {
		if i+1 < period {
			continue
		}
		var ok bool
		if window, ok = collect(window[:0], values[i+1-period:i+1]); !ok {
			continue
		}
		mean, _ := CalculateSMA(window, period)
		ss := 0.0
		for _, v := range window {
			ss += (v - mean) * (v - mean)
		}
		out[i] = null.FloatFrom(math.Sqrt(ss / float64(period-1)))
	}
	return out
}

// Bollinger returns the upper, middle and lower bands: the rolling mean plus
// or minus k rolling sample standard deviations.
func Bollinger(closes []null.Float, period int, k float64) (upper, middle, lower []null.Float) {
	middle = RollingMean(closes, period)
	std := RollingStd(closes, period)
	upper = make([]null.Float, len(closes))
	lower = make([]null.Float, len(closes))
	for i := range closes {
		if middle[i].Valid && std[i].Valid {
			upper[i] = null.FloatFrom(middle[i].Float64 + k*std[i].Float64)
			lower[i] = null.FloatFrom(middle[i].Float64 - k*std[i].Float64)
		}
	}
	return upper, middle, lower
}
