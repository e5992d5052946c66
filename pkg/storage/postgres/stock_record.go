package postgres

import "time"

// StockRecord represents one daily price row stored in the database.
type StockRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index: one row per (date, ticker)
	Date   time.Time `gorm:"type:date;not null;index:idx_stock_date_ticker,unique"`
	Ticker string    `gorm:"type:varchar(12);not null;index:idx_stock_ticker;index:idx_stock_date_ticker,unique"`

	Open  float64 `gorm:"type:numeric;not null"`
	High  float64 `gorm:"type:numeric;not null"`
	Low   float64 `gorm:"type:numeric;not null"`
	Close float64 `gorm:"type:numeric;not null"`

	Volume int64 `gorm:"not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (StockRecord) TableName() string {
	return "stock_data"
}
