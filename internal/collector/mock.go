package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"TWStockBoard/internal/model"
	"TWStockBoard/internal/roc"
)

// MockFetcher returns controllable month payloads for offline runs and tests.
// Months without an explicit payload are synthesized from BasePrice.
type MockFetcher struct {
	BasePrice float64
	Payloads  map[string][]byte // keyed by MonthKey.Param()
	Errs      map[string]error  // keyed by MonthKey.Param()

	mu    sync.Mutex
	calls map[model.MonthKey]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMonth(_ context.Context, key model.MonthKey) ([]byte, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[model.MonthKey]int)
	}
	m.calls[key]++
	m.mu.Unlock()

	if err, ok := m.Errs[key.Param()]; ok {
		return nil, err
	}
	if p, ok := m.Payloads[key.Param()]; ok {
		return p, nil
	}
	return GenerateMonthPayload(key.Month, m.BasePrice), nil
}

// Calls returns how many times a month was requested.
func (m *MockFetcher) Calls(key model.MonthKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

// TotalCalls returns the number of requests across all months.
func (m *MockFetcher) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// GenerateMonthPayload builds a STOCK_DAY-shaped payload with one row per
// weekday of month and a slowly drifting price.
func GenerateMonthPayload(month time.Time, basePrice float64) []byte {
	if basePrice <= 0 {
		basePrice = 100
	}
	month = roc.MonthStart(month)
	var rows [][]string
	prev := basePrice
	for d := month; d.Month() == month.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(d.Day()-15)*0.002)
		rows = append(rows, []string{
			roc.Format(d),
			"1,000,000",
			fmt.Sprintf("%.0f", p*1000000),
			fmt.Sprintf("%.2f", p*0.995),
			fmt.Sprintf("%.2f", p*1.005),
			fmt.Sprintf("%.2f", p*0.99),
			fmt.Sprintf("%.2f", p),
			fmt.Sprintf("%+.2f", p-prev),
			"5,000",
		})
		prev = p
	}
	payload := map[string]any{
		"stat":   "OK",
		"fields": []string{FieldDate, FieldVolume, FieldTurnover, FieldOpen, FieldHigh, FieldLow, FieldClose, FieldPriceChange, FieldTradeCount},
		"data":   rows,
	}
	b, _ := json.Marshal(payload)
	return b
}
