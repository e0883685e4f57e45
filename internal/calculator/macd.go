package calculator

import "github.com/guregu/null/v6"

// MACD periods used by the dashboard.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// EMA computes the exponential moving average with alpha = 2/(span+1),
// seeded with the first valid value and without bias correction. Invalid
// inputs yield invalid outputs and leave the running average untouched.
func EMA(values []null.Float, span int) []null.Float {
	out := make([]null.Float, len(values))
	if span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	var prev float64
	seeded := false
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if !seeded {
			prev = v.Float64
			seeded = true
		} else {
			prev = alpha*v.Float64 + (1-alpha)*prev
		}
		out[i] = null.FloatFrom(prev)
	}
	return out
}

// MACD returns the MACD line (fast EMA minus slow EMA), its signal EMA and
// the histogram (MACD minus signal).
func MACD(closes []null.Float, fast, slow, signal int) (line, sig, hist []null.Float) {
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	line = make([]null.Float, len(closes))
	for i := range closes {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			line[i] = null.FloatFrom(fastEMA[i].Float64 - slowEMA[i].Float64)
		}
	}
	sig = EMA(line, signal)
	hist = make([]null.Float, len(closes))
	for i := range closes {
		if line[i].Valid && sig[i].Valid {
			hist[i] = null.FloatFrom(line[i].Float64 - sig[i].Float64)
		}
	}
	return line, sig, hist
}
