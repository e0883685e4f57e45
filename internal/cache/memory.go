package cache

import (
	"container/list"
	"sync"

	"TWStockBoard/internal/model"
)

// DefaultMaxEntries bounds the in-memory cache when no size is configured.
const DefaultMaxEntries = 4096

type entry struct {
	key     model.MonthKey
	payload []byte
}

// Memory is a bounded least-recently-used cache.
type Memory struct {
	mu      sync.Mutex
	max     int
	order   *list.List
	entries map[model.MonthKey]*list.Element
}

// NewMemory creates an LRU holding at most maxEntries months.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		max:     maxEntries,
		order:   list.New(),
		entries: make(map[model.MonthKey]*list.Element),
	}
}

func (m *Memory) Get(key model.MonthKey) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	m.order.MoveToFront(el)
	return el.Value.(*entry).payload, true
}

func (m *Memory) Put(key model.MonthKey, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[key]; ok {
		el.Value.(*entry).payload = payload
		m.order.MoveToFront(el)
		return
	}
	m.entries[key] = m.order.PushFront(&entry{key: key, payload: payload})
	for m.order.Len() > m.max {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.entries, oldest.Value.(*entry).key)
	}
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memory) Close() error { return nil }
