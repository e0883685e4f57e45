// Package calculator derives technical indicator columns from a price series.
// Every function returns a new column aligned row-for-row with its input; an
// invalid value marks a row where the indicator is undefined.
package calculator

import (
	"errors"

	"github.com/guregu/null/v6"
)

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// RollingMean returns the trailing mean over period rows. The first period-1
// rows, and any window containing an invalid input, are invalid.
func RollingMean(values []null.Float, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
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
		out[i] = null.FloatFrom(mean)
	}
	return out
}

// MovingAverage is the rolling mean of close prices.
func MovingAverage(closes []null.Float, period int) []null.Float {
	return RollingMean(closes, period)
}

// VolumeMovingAverages computes one rolling mean of volume per period.
func VolumeMovingAverages(volumes []null.Float, periods ...int) map[int][]null.Float {
	out := make(map[int][]null.Float, len(periods))
	for _, p := range periods {
		out[p] = RollingMean(volumes, p)
	}
	return out
}

// collect appends the float values of a window to dst, reporting false if any
// of them is invalid.
func collect(dst []float64, window []null.Float) ([]float64, bool) {
	for _, v := range window {
		if !v.Valid {
			return dst, false
		}
		dst = append(dst, v.Float64)
	}
	return dst, true
}
