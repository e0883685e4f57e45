package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TWStockBoard/internal/httpx"
	"TWStockBoard/internal/model"
)

// DefaultStockDayURL is the TWSE per-month daily trading endpoint.
const DefaultStockDayURL = "https://www.twse.com.tw/exchangeReport/STOCK_DAY"

// TWSEFetcher implements MonthFetcher against the TWSE STOCK_DAY endpoint.
type TWSEFetcher struct {
	BaseURL string
	Client  *http.Client
	Limiter *RateLimiter
}

// NewTWSEFetcher creates a fetcher with a fixed per-request timeout and optional proxy.
func NewTWSEFetcher(baseURL string, timeout time.Duration, proxyURL string, perMinute int) *TWSEFetcher {
	if baseURL == "" {
		baseURL = DefaultStockDayURL
	}
	return &TWSEFetcher{
		BaseURL: baseURL,
		Client:  httpx.NewClient(timeout, proxyURL),
		Limiter: NewRateLimiter(perMinute),
	}
}

func (f *TWSEFetcher) Name() string { return "twse" }

func (f *TWSEFetcher) FetchMonth(ctx context.Context, key model.MonthKey) ([]byte, error) {
	if err := f.Limiter.Wait(ctx); err != nil {
		return nil, err
	}
	query := url.Values{
		"response": {"json"},
		"date":     {key.Param()},
		"stockNo":  {key.Code},
	}
	body, err := httpx.Get(ctx, f.Client, f.BaseURL, query)
	if err != nil {
		return nil, fmt.Errorf("twse %s: %w", key, err)
	}
	return body, nil
}
