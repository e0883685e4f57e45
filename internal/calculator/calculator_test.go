package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"TWStockBoard/internal/model"
)

const eps = 1e-9

func floats(vs ...float64) []null.Float {
	out := make([]null.Float, len(vs))
	for i, v := range vs {
		out[i] = null.FloatFrom(v)
	}
	return out
}

// fixture is a deterministic 30-row close series with both up and down days.
func fixture() []float64 {
	out := make([]float64, 30)
	for i := range out {
		out[i] = 100 + 0.4*float64(i) + 3*math.Sin(float64(i)*0.9)
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestMovingAverageWindowEdge(t *testing.T) {
	ma := MovingAverage(floats(1, 2, 3, 4), 5)
	for i, v := range ma {
		if v.Valid {
			t.Errorf("row %d: expected invalid MA5 over 4 rows, got %v", i, v.Float64)
		}
	}

	ma = MovingAverage(floats(1, 2, 3, 4, 10, 20), 5)
	for i := 0; i < 4; i++ {
		if ma[i].Valid {
			t.Errorf("row %d: expected invalid during warm-up", i)
		}
	}
	if !ma[4].Valid || !near(ma[4].Float64, 4) {
		t.Errorf("row 5: expected mean of rows 1-5 = 4, got %v", ma[4])
	}
	if !ma[5].Valid || !near(ma[5].Float64, 39.0/5) {
		t.Errorf("row 6: expected 7.8, got %v", ma[5])
	}
}

func TestMovingAverageSkipsMissing(t *testing.T) {
	in := floats(1, 2, 3, 4)
	in[1] = null.Float{}
	ma := MovingAverage(in, 2)
	if ma[1].Valid || ma[2].Valid {
		t.Error("expected windows containing a missing close to be invalid")
	}
	if !ma[3].Valid || !near(ma[3].Float64, 3.5) {
		t.Errorf("expected 3.5, got %v", ma[3])
	}
}

func TestCalculateSMA(t *testing.T) {
	if _, err := CalculateSMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero period")
	}
	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for short input")
	}
	got, err := CalculateSMA([]float64{1, 2, 3, 4}, 2)
	if err != nil || got != 3.5 {
		t.Errorf("expected 3.5, got %v (%v)", got, err)
	}
}

func TestRSIHandComputed(t *testing.T) {
	rsi := RSI(floats(10, 12, 11, 14), 2)
	if rsi[0].Valid || rsi[1].Valid {
		t.Error("expected warm-up rows to be invalid")
	}
	if !near(rsi[2].Float64, 200.0/3) {
		t.Errorf("row 2: expected 66.67, got %v", rsi[2].Float64)
	}
	if !near(rsi[3].Float64, 75) {
		t.Errorf("row 3: expected 75, got %v", rsi[3].Float64)
	}
}

func TestRSIFirstValueAtPeriodMinusOne(t *testing.T) {
	rsi := RSI(floats(10, 12, 11, 13, 12), 3)
	if rsi[0].Valid || rsi[1].Valid {
		t.Error("expected rows before period-1 to be invalid")
	}
	// gains 0,2,0 and losses 0,0,1 over rows 0..2
	if !rsi[2].Valid || !near(rsi[2].Float64, 200.0/3) {
		t.Errorf("row 2: expected 66.67, got %v", rsi[2])
	}
	// gains 2,0,2 and losses 0,1,0 over rows 1..3
	if !near(rsi[3].Float64, 80) {
		t.Errorf("row 3: expected 80, got %v", rsi[3].Float64)
	}
}

func TestRSINoLossesIsInvalid(t *testing.T) {
	rsi := RSI(floats(1, 2, 3, 4, 5, 6), 3)
	for i, v := range rsi {
		if v.Valid {
			t.Errorf("row %d: expected invalid RSI with zero average loss, got %v", i, v.Float64)
		}
	}
}

func TestRSIGolden(t *testing.T) {
	closes := fixture()
	const period = DefaultRSIPeriod
	got := RSI(floats(closes...), period)

	for i := range closes {
		if i < period-1 {
			if got[i].Valid {
				t.Errorf("row %d: expected invalid during warm-up", i)
			}
			continue
		}
		var up, down float64
		for j := max(i-period+1, 1); j <= i; j++ {
			d := closes[j] - closes[j-1]
			if d > 0 {
				up += d
			} else {
				down -= d
			}
		}
		want := 100 - 100/(1+(up/period)/(down/period))
		if !got[i].Valid || !near(got[i].Float64, want) {
			t.Errorf("row %d: expected %.9f, got %v", i, want, got[i])
		}
		if got[i].Float64 < 0 || got[i].Float64 > 100 {
			t.Errorf("row %d: RSI %v out of [0,100]", i, got[i].Float64)
		}
	}
}

func TestEMA(t *testing.T) {
	got := EMA(floats(2, 4, 8), 3)
	want := []float64{2, 3, 5.5}
	for i := range want {
		if !near(got[i].Float64, want[i]) {
			t.Errorf("row %d: expected %v, got %v", i, want[i], got[i].Float64)
		}
	}
}

func TestMACDGolden(t *testing.T) {
	closes := fixture()
	line, sig, hist := MACD(floats(closes...), 12, 26, 9)

	ema := func(xs []float64, span int) []float64 {
		a := 2.0 / float64(span+1)
		out := make([]float64, len(xs))
		out[0] = xs[0]
		for i := 1; i < len(xs); i++ {
			out[i] = a*xs[i] + (1-a)*out[i-1]
		}
		return out
	}
	fast, slow := ema(closes, 12), ema(closes, 26)
	wantLine := make([]float64, len(closes))
	for i := range closes {
		wantLine[i] = fast[i] - slow[i]
	}
	wantSig := ema(wantLine, 9)

	for i := range closes {
		if !near(line[i].Float64, wantLine[i]) {
			t.Errorf("row %d: MACD expected %v, got %v", i, wantLine[i], line[i].Float64)
		}
		if !near(sig[i].Float64, wantSig[i]) {
			t.Errorf("row %d: signal expected %v, got %v", i, wantSig[i], sig[i].Float64)
		}
		if !near(hist[i].Float64, wantLine[i]-wantSig[i]) {
			t.Errorf("row %d: histogram mismatch", i)
		}
	}
	if line[0].Float64 != 0 {
		t.Errorf("expected MACD to start at 0, got %v", line[0].Float64)
	}
}

func TestBollinger(t *testing.T) {
	upper, middle, lower := Bollinger(floats(1, 2, 3), 3, 2)
	if upper[1].Valid || middle[1].Valid || lower[1].Valid {
		t.Error("expected warm-up rows to be invalid")
	}
	if !near(middle[2].Float64, 2) || !near(upper[2].Float64, 4) || !near(lower[2].Float64, 0) {
		t.Errorf("unexpected bands: %v %v %v", upper[2], middle[2], lower[2])
	}
}

func TestVolumeMovingAverages(t *testing.T) {
	got := VolumeMovingAverages(floats(100, 200, 300, 400, 500), 2, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(got))
	}
	if !near(got[2][1].Float64, 150) || !near(got[5][4].Float64, 300) {
		t.Errorf("unexpected volume averages: %v %v", got[2][1], got[5][4])
	}
}

func TestPeriodRange(t *testing.T) {
	if _, _, err := PeriodRange(nil); err == nil {
		t.Error("expected error for no bars")
	}
	bars := []model.DailyBar{
		{High: null.FloatFrom(10), Low: null.FloatFrom(8)},
		{High: null.Float{}, Low: null.FloatFrom(7)},
		{High: null.FloatFrom(12), Low: null.FloatFrom(9)},
	}
	high, low, err := PeriodRange(bars)
	if err != nil || high != 12 || low != 7 {
		t.Errorf("expected 12/7, got %v/%v (%v)", high, low, err)
	}
	pos, _ := RangePosition(9.5, high, low)
	if !near(pos, 0.5) {
		t.Errorf("expected 0.5, got %v", pos)
	}
}

func TestAnnotateAlignment(t *testing.T) {
	closes := fixture()
	series := model.PriceSeries{Code: "2330"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		series.Bars = append(series.Bars, model.DailyBar{
			Date:   start.AddDate(0, 0, i),
			Close:  null.FloatFrom(c),
			Volume: null.FloatFrom(float64(1000 + i)),
		})
	}
	ind := Annotate(series)
	n := len(closes)
	cols := [][]null.Float{ind.RSI, ind.MACD, ind.Signal, ind.Histogram, ind.BBUpper, ind.BBMiddle, ind.BBLower}
	for _, p := range DefaultMAPeriods {
		cols = append(cols, ind.MA[p])
	}
	for _, p := range DefaultVolumePeriods {
		cols = append(cols, ind.VolumeMA[p])
	}
	for i, c := range cols {
		if len(c) != n {
			t.Errorf("column %d: expected %d rows, got %d", i, n, len(c))
		}
	}
	for _, v := range ind.MA[60] {
		if v.Valid {
			t.Fatal("expected MA60 to be undefined over 30 rows")
		}
	}
	if !ind.MA[20][n-1].Valid || !ind.BBMiddle[n-1].Valid {
		t.Error("expected MA20 and Bollinger middle on the last row")
	}
	if ind.MA[20][n-1] != ind.BBMiddle[n-1] {
		t.Error("expected Bollinger middle band to equal MA20")
	}
}
