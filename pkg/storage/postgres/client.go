package postgres

import (
	"context"
	"errors"
	"fmt"

	"stockcompare/config"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNoDatabaseForTicker is returned when a ticker has no entry in the
// ticker -> database routing map.
var ErrNoDatabaseForTicker = errors.New("no database mapped for ticker")

// ErrAuthFailed marks SQLSTATE 28xxx (invalid authorization) connect
// failures, so callers can tell bad credentials from an unreachable host.
var ErrAuthFailed = errors.New("postgres authentication failed")

type PostgresClient struct {
	DB *gorm.DB
}

func NewClient(dsn string) (*PostgresClient, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "28000" || pgErr.Code == "28P01") {
			return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresClient{DB: db}, nil
}

// OpenForTicker connects to the database routed for ticker, optionally
// creating the database first, and runs AutoMigrate on the stock_data table.
// Tickers absent from the routing map fail with ErrNoDatabaseForTicker.
func OpenForTicker(cfg config.PostgresConfig, databases map[string]string, env, ticker string, createDB bool) (*PostgresClient, error) {
	dbName, ok := databases[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDatabaseForTicker, ticker)
	}

	if createDB {
		if err := CreateDatabase(cfg, env, dbName); err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	client, err := NewClient(cfg.DSNFor(env, dbName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := client.AutoMigrateStockData(); err != nil {
		client.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) AutoMigrateStockData() error {
	if err := p.DB.AutoMigrate(&StockRecord{}); err != nil {
		return fmt.Errorf("auto-migrate stock_data table: %w", err)
	}
	return nil
}

func (p *PostgresClient) IsHealthy(ctx context.Context) bool {
	db, err := p.DB.DB()
	if err != nil {
		return false
	}
	return db.PingContext(ctx) == nil
}

func (p *PostgresClient) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return db.Close()
}
