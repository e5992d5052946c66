package storage

import (
	"context"

	"stockcompare/internal/series"
)

// PriceStore is the write side of a durable price sink. The postgres client
// implements it; MemoryStore stands in for tests.
type PriceStore interface {
	UpsertPrices(ctx context.Context, table *series.Table) (int, error)
}
