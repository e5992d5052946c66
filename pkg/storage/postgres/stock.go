package postgres

import (
	"context"
	"fmt"
	"time"

	"stockcompare/internal/series"

	"gorm.io/gorm/clause"
)

// UpsertPrices writes every row of the table keyed on (date, ticker):
// insert if absent, else overwrite open/high/low/close/volume. Re-running
// with identical rows changes nothing. A failed row aborts the remaining
// rows of the batch and returns the number of rows written before the failure.
func (p *PostgresClient) UpsertPrices(ctx context.Context, table *series.Table) (int, error) {
	for i, point := range table.Points {
		record := ToStockRecord(point)

		tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "date"},
				{Name: "ticker"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
		}).Create(record)

		if tx.Error != nil {
			return i, fmt.Errorf("upsert %s %s: %w",
				point.Symbol, point.Date.Format("2006-01-02"), tx.Error)
		}
	}
	return len(table.Points), nil
}

// AllPrices retrieves the full stored history for a ticker, newest first.
func (p *PostgresClient) AllPrices(ctx context.Context, ticker string) ([]StockRecord, error) {
	var records []StockRecord
	err := p.DB.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("date DESC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

// PricesByDateRange retrieves rows for a ticker with date in [start, end].
func (p *PostgresClient) PricesByDateRange(ctx context.Context, ticker string, start, end time.Time) ([]StockRecord, error) {
	var records []StockRecord
	err := p.DB.WithContext(ctx).
		Where("ticker = ? AND date BETWEEN ? AND ?", ticker, series.Day(start), series.Day(end)).
		Order("date DESC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

// LatestPrices retrieves the most recent n rows for a ticker.
func (p *PostgresClient) LatestPrices(ctx context.Context, ticker string, n int) ([]StockRecord, error) {
	var records []StockRecord
	err := p.DB.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("date DESC").
		Limit(n).
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

// ToStockRecord converts a series point into a StockRecord for DB insertion.
func ToStockRecord(p series.Point) *StockRecord {
	return &StockRecord{
		Date:   p.Date,
		Ticker: p.Symbol,
		Open:   p.Open,
		High:   p.High,
		Low:    p.Low,
		Close:  p.Close,
		Volume: p.Volume,
	}
}

// TableFromRecords rebuilds a series table from stored rows (any order).
func TableFromRecords(ticker string, records []StockRecord) (*series.Table, error) {
	points := make([]series.Point, 0, len(records))
	for _, r := range records {
		points = append(points, series.Point{
			Date:   r.Date,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
			Symbol: r.Ticker,
		})
	}
	return series.NewTable(ticker, points)
}
