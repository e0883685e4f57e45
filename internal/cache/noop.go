package cache

import "TWStockBoard/internal/model"

// Noop never stores anything; every month is fetched from the network.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Get(_ model.MonthKey) ([]byte, bool) { return nil, false }
func (n *Noop) Put(_ model.MonthKey, _ []byte)      {}
func (n *Noop) Len() int                            { return 0 }
func (n *Noop) Close() error                        { return nil }
