// Package cache memoizes raw monthly exchange payloads keyed by (ticker, month).
package cache

import "TWStockBoard/internal/model"

// Cache stores successful monthly payloads for the lifetime of the process.
type Cache interface {
	Get(key model.MonthKey) ([]byte, bool)
	Put(key model.MonthKey, payload []byte)
	Len() int
	Close() error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendNone   = "none"
)

// New builds the cache for a configured backend. maxEntries bounds the
// in-memory LRU; dsn is the SQLite data source (":memory:" keeps it in RAM).
func New(backend string, maxEntries int, dsn string) (Cache, error) {
	switch backend {
	case BackendSQLite:
		return NewSQLite(dsn)
	case BackendNone:
		return NewNoop(), nil
	default:
		return NewMemory(maxEntries), nil
	}
}
