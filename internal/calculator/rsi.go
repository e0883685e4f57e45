package calculator

import "github.com/guregu/null/v6"

// DefaultRSIPeriod is the usual 14-day RSI window.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index using simple rolling means of the
// close-to-close gains and losses. The first row has no prior close and counts
// as a flat day, so the first value lands on row period-1. A row is invalid
// during warm-up, when a delta in its window is missing, or when the window
// has no losses at all.
func RSI(closes []null.Float, period int) []null.Float {
	out := make([]null.Float, len(closes))
	if period <= 0 || len(closes) == 0 {
		return out
	}

	gains := make([]null.Float, len(closes))
	losses := make([]null.Float, len(closes))
	gains[0], losses[0] = null.FloatFrom(0), null.FloatFrom(0)
	for i := 1; i < len(closes); i++ {
		if !closes[i].Valid || !closes[i-1].Valid {
			continue
		}
		change := closes[i].Float64 - closes[i-1].Float64
		if change > 0 {
			gains[i] = null.FloatFrom(change)
			losses[i] = null.FloatFrom(0)
		} else {
			gains[i] = null.FloatFrom(0)
			losses[i] = null.FloatFrom(-change)
		}
	}

	avgGain := RollingMean(gains, period)
	avgLoss := RollingMean(losses, period)
	for i := range closes {
		if !avgGain[i].Valid || !avgLoss[i].Valid || avgLoss[i].Float64 == 0 {
			continue
		}
		rs := avgGain[i].Float64 / avgLoss[i].Float64
		out[i] = null.FloatFrom(100.0 - 100.0/(1.0+rs))
	}
	return out
}
