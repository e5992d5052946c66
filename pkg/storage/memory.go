package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"stockcompare/internal/series"
)

type memoryKey struct {
	Ticker string
	Date   time.Time
}

// MemoryStore is an in-memory PriceStore with the same upsert semantics as
// the postgres client: one row per (ticker, date), later writes overwrite.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[memoryKey]series.Point
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[memoryKey]series.Point),
	}
}

func (m *MemoryStore) UpsertPrices(_ context.Context, table *series.Table) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range table.Points {
		m.rows[memoryKey{Ticker: p.Symbol, Date: p.Date}] = p
	}
	return len(table.Points), nil
}

// Prices returns the stored rows for a ticker in ascending date order.
func (m *MemoryStore) Prices(ticker string) []series.Point {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []series.Point
	for k, p := range m.rows {
		if k.Ticker == ticker {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Count returns the total number of stored rows across all tickers.
func (m *MemoryStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
