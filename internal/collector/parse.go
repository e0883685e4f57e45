package collector

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"TWStockBoard/internal/model"
	"TWStockBoard/internal/roc"
)

// Column headers of the STOCK_DAY payload.
const (
	FieldDate        = "日期"
	FieldVolume      = "成交股數"
	FieldTurnover    = "成交金額"
	FieldOpen        = "開盤價"
	FieldHigh        = "最高價"
	FieldLow         = "最低價"
	FieldClose       = "收盤價"
	FieldPriceChange = "漲跌價差"
	FieldTradeCount  = "成交筆數"
)

// EmptyPayload is substituted for a month whose request failed.
var EmptyPayload = []byte(`{"data":[],"fields":[]}`)

// monthPayload is the STOCK_DAY response body. Cells are usually strings but
// are decoded loosely.
type monthPayload struct {
	Stat   string   `json:"stat"`
	Fields []string `json:"fields"`
	Data   [][]any  `json:"data"`
}

var placeholders = map[string]bool{
	"": true, "-": true, "--": true, "---": true,
	"—": true, "–": true, "－": true, "－－": true,
	"null": true, "None": true, "NaN": true, "nan": true,
}

// ParseNumber parses an exchange numeric cell. Thousands separators are
// ignored; placeholders and anything unparseable yield an invalid value.
func ParseNumber(s string) null.Float {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if placeholders[s] {
		return null.Float{}
	}
	s = strings.TrimPrefix(s, "+")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return null.Float{}
	}
	f, _ := d.Float64()
	return null.FloatFrom(f)
}

// ParseMonth converts a STOCK_DAY payload into daily bars in payload order.
// A payload without data or fields yields no bars and no error.
func ParseMonth(payload []byte) ([]model.DailyBar, error) {
	var p monthPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode month payload: %w", err)
	}
	if len(p.Data) == 0 || len(p.Fields) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(p.Fields))
	for i, f := range p.Fields {
		col[strings.TrimSpace(f)] = i
	}
	if _, ok := col[FieldDate]; !ok {
		return nil, fmt.Errorf("month payload has no %q field", FieldDate)
	}

	bars := make([]model.DailyBar, 0, len(p.Data))
	for _, row := range p.Data {
		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return cellString(row[i])
		}
		raw := cell(FieldDate)
		date, err := roc.ParseSlashDate(raw)
		if err != nil {
			log.Printf("[WARN] skipping row with bad date %q: %v", raw, err)
			continue
		}
		bars = append(bars, model.DailyBar{
			Date:        date,
			RawDate:     strings.TrimSpace(raw),
			Open:        ParseNumber(cell(FieldOpen)),
			High:        ParseNumber(cell(FieldHigh)),
			Low:         ParseNumber(cell(FieldLow)),
			Close:       ParseNumber(cell(FieldClose)),
			Volume:      ParseNumber(cell(FieldVolume)),
			Turnover:    ParseNumber(cell(FieldTurnover)),
			TradeCount:  ParseNumber(cell(FieldTradeCount)),
			PriceChange: ParseNumber(cell(FieldPriceChange)),
		})
	}
	return bars, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return decimal.NewFromFloat(x).String()
	default:
		return fmt.Sprint(x)
	}
}
