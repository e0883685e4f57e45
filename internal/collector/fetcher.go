package collector

import (
	"context"

	"TWStockBoard/internal/model"
)

// MonthFetcher retrieves the raw exchange payload of one (ticker, month).
type MonthFetcher interface {
	FetchMonth(ctx context.Context, key model.MonthKey) ([]byte, error)
	Name() string
}
