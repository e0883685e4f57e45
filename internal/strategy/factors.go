package strategy

import (
	"fmt"

	"github.com/guregu/null/v6"

	"TWStockBoard/internal/model"
)

// snapshot is one row of the annotated series.
type snapshot struct {
	close  null.Float
	ma5    null.Float
	ma20   null.Float
	ma60   null.Float
	rsi    float64
	macd   float64
	signal null.Float
}

func snapshotAt(series model.PriceSeries, ind model.Indicators, i int) snapshot {
	at := func(col []null.Float) null.Float {
		if i < len(col) {
			return col[i]
		}
		return null.Float{}
	}
	return snapshot{
		close:  series.Bars[i].Close,
		ma5:    at(ind.MA[5]),
		ma20:   at(ind.MA[20]),
		ma60:   at(ind.MA[60]),
		rsi:    ind.RSI[i].Float64,
		macd:   ind.MACD[i].Float64,
		signal: at(ind.Signal),
	}
}

// greater compares two optional values; a missing side never compares true.
func greater(a, b null.Float) bool {
	return a.Valid && b.Valid && a.Float64 > b.Float64
}

// judgeTrend compares the close with MA20.
func judgeTrend(s snapshot) model.SignalLine {
	if greater(s.close, s.ma20) {
		return model.SignalLine{Name: "趨勢", Bias: model.BiasBullish, Commentary: "價格在20日均線之上 (多頭趨勢)"}
	}
	return model.SignalLine{Name: "趨勢", Bias: model.BiasBearish, Commentary: "價格在20日均線之下 (空頭趨勢)"}
}

// judgeAlignment checks whether MA5, MA20 and MA60 are stacked.
func judgeAlignment(s snapshot) model.SignalLine {
	switch {
	case greater(s.ma5, s.ma20) && greater(s.ma20, s.ma60):
		return model.SignalLine{Name: "均線", Bias: model.BiasBullish, Commentary: "均線多頭排列"}
	case greater(s.ma20, s.ma5) && greater(s.ma60, s.ma20):
		return model.SignalLine{Name: "均線", Bias: model.BiasBearish, Commentary: "均線空頭排列"}
	default:
		return model.SignalLine{Name: "均線", Bias: model.BiasNeutral, Commentary: "均線糾結中"}
	}
}

func judgeRSI(s snapshot) model.SignalLine {
	switch {
	case s.rsi > RSIOverbought:
		return model.SignalLine{Name: "RSI", Bias: model.BiasBearish, Commentary: fmt.Sprintf("RSI超買 (>%.0f)", RSIOverbought)}
	case s.rsi < RSIOversold:
		return model.SignalLine{Name: "RSI", Bias: model.BiasBullish, Commentary: fmt.Sprintf("RSI超賣 (<%.0f)", RSIOversold)}
	default:
		return model.SignalLine{Name: "RSI", Bias: model.BiasNeutral, Commentary: fmt.Sprintf("RSI正常 (%.1f)", s.rsi)}
	}
}

func judgeMACD(s snapshot) model.SignalLine {
	if greater(null.FloatFrom(s.macd), s.signal) {
		return model.SignalLine{Name: "MACD", Bias: model.BiasBullish, Commentary: "MACD多頭訊號"}
	}
	return model.SignalLine{Name: "MACD", Bias: model.BiasBearish, Commentary: "MACD空頭訊號"}
}
