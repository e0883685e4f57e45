// Package collector fetches daily trading history from the exchange one
// calendar month at a time and stitches the months into a price series.
package collector

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"TWStockBoard/internal/cache"
	"TWStockBoard/internal/model"
	"TWStockBoard/internal/roc"
)

// Stats counts how months were served.
type Stats struct {
	NetworkCalls int `json:"network_calls"`
	CacheHits    int `json:"cache_hits"`
	Failures     int `json:"failures"`
}

// History is the price history fetcher. Months are fetched sequentially and
// memoized in the injected cache; a failed month contributes no bars and
// never aborts the range.
type History struct {
	Fetcher MonthFetcher
	Cache   cache.Cache

	mu    sync.Mutex
	stats Stats
}

// NewHistory creates a History. A nil cache disables memoization.
func NewHistory(fetcher MonthFetcher, c cache.Cache) *History {
	if c == nil {
		c = cache.NewNoop()
	}
	return &History{Fetcher: fetcher, Cache: c}
}

// Stats returns a snapshot of the fetch counters.
func (h *History) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// MonthList returns the first day of every month touched by [start, end],
// oldest first. It is empty when start is after end.
func MonthList(start, end time.Time) []time.Time {
	cur := roc.MonthStart(start)
	last := roc.MonthStart(end)
	var out []time.Time
	for !cur.After(last) {
		out = append(out, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// FetchMonthPayload returns the raw payload of one month, from the cache when
// possible. Transport failures yield EmptyPayload and are not cached.
func (h *History) FetchMonthPayload(ctx context.Context, key model.MonthKey) []byte {
	if payload, ok := h.Cache.Get(key); ok {
		h.count(func(s *Stats) { s.CacheHits++ })
		return payload
	}

	h.count(func(s *Stats) { s.NetworkCalls++ })
	payload, err := h.Fetcher.FetchMonth(ctx, key)
	if err != nil {
		h.count(func(s *Stats) { s.Failures++ })
		log.Printf("[WARN] fetch month %s from %s failed: %v", key, h.Fetcher.Name(), err)
		return EmptyPayload
	}
	if !json.Valid(payload) {
		h.count(func(s *Stats) { s.Failures++ })
		log.Printf("[WARN] fetch month %s: response is not JSON", key)
		return EmptyPayload
	}
	h.Cache.Put(key, payload)
	return payload
}

// FetchMonth returns the parsed bars of one month.
func (h *History) FetchMonth(ctx context.Context, code string, month time.Time) []model.DailyBar {
	key := model.MonthKey{Code: code, Month: roc.MonthStart(month)}
	bars, err := ParseMonth(h.FetchMonthPayload(ctx, key))
	if err != nil {
		log.Printf("[WARN] parse month %s: %v", key, err)
		return nil
	}
	return bars
}

// FetchRange returns the daily bars of code within [start, end] inclusive,
// ascending by date with duplicate dates removed. An empty series means no
// data was available.
func (h *History) FetchRange(ctx context.Context, code string, start, end time.Time) model.PriceSeries {
	start, end = roc.Day(start), roc.Day(end)
	series := model.PriceSeries{Code: code, Start: start, End: end, Bars: []model.DailyBar{}}
	window := roc.Window{Start: start, End: end}

	var all []model.DailyBar
	for _, month := range MonthList(start, end) {
		if ctx.Err() != nil {
			log.Printf("[WARN] fetch range %s cancelled: %v", code, ctx.Err())
			break
		}
		for _, b := range h.FetchMonth(ctx, code, month) {
			if window.Contains(b.Date) {
				all = append(all, b)
			}
		}
	}
	if len(all) == 0 {
		return series
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	series.Bars = append(series.Bars, all[0])
	for _, b := range all[1:] {
		if b.Date.Equal(series.Last().Date) {
			continue
		}
		series.Bars = append(series.Bars, b)
	}
	return series
}

func (h *History) count(fn func(*Stats)) {
	h.mu.Lock()
	fn(&h.stats)
	h.mu.Unlock()
}
