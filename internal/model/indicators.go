package model

import "github.com/guregu/null/v6"

// Indicators holds derived columns aligned row-for-row with the PriceSeries
// they were computed from. An invalid value means the indicator is undefined
// for that row (warm-up window or missing input).
type Indicators struct {
	MA        map[int][]null.Float `json:"ma"`     // keyed by period
	VolumeMA  map[int][]null.Float `json:"vol_ma"` // keyed by period
	RSI       []null.Float         `json:"rsi"`
	MACD      []null.Float         `json:"macd"`
	Signal    []null.Float         `json:"macd_signal"`
	Histogram []null.Float         `json:"macd_hist"`
	BBUpper   []null.Float         `json:"bb_upper"`
	BBMiddle  []null.Float         `json:"bb_middle"`
	BBLower   []null.Float         `json:"bb_lower"`
}
