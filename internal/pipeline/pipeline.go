package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockcompare/config"
	"stockcompare/internal/compare"
	"stockcompare/internal/csvsink"
	"stockcompare/internal/series"
	"stockcompare/pkg/alphavantage"
	"stockcompare/pkg/storage"
	"stockcompare/pkg/storage/postgres"

	"go.uber.org/zap"
)

const storeTimeout = 30 * time.Second

// Fetcher retrieves a windowed daily series for one symbol.
type Fetcher interface {
	DailySeries(ctx context.Context, symbol string, start, end time.Time) (*series.Table, error)
}

// StoreOpener connects to the durable sink routed for a ticker. The returned
// close func must always be called, on success and on failure paths alike.
type StoreOpener func(ticker string) (storage.PriceStore, func() error, error)

// Run executes the full pipeline: fetch the configured ticker pair, persist
// each series to CSV and Postgres, then compare and write the report
// artifacts. Persistence is best-effort: a failed CSV write or upsert is
// logged and does not block the comparison. A failed fetch excludes that
// ticker, and the comparison requires both.
func Run(cfg *config.Config, log *zap.Logger) error {
	env := cfg.Log.Environment

	fetcher := alphavantage.NewRESTClient(
		cfg.AlphaVantage.BaseURL,
		cfg.AlphaVantage.ResolveAPIKey(env),
		cfg.AlphaVantage.Timeout,
	)

	openStore := func(ticker string) (storage.PriceStore, func() error, error) {
		client, err := postgres.OpenForTicker(cfg.Postgres, cfg.Symbols.Databases, env, ticker, true)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	}

	return run(cfg, log, fetcher, openStore, time.Now)
}

func run(cfg *config.Config, log *zap.Logger, fetcher Fetcher, openStore StoreOpener, now func() time.Time) error {
	end := now()
	start := end.AddDate(0, -cfg.AlphaVantage.WindowMonths, 0)

	var tables []*series.Table
	for _, ticker := range cfg.Symbols.Pair {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.AlphaVantage.Timeout)
		table, err := fetcher.DailySeries(ctx, ticker, start, end)
		cancel()
		if err != nil {
			if errors.Is(err, alphavantage.ErrBadShape) {
				log.Error("provider returned unexpected response structure",
					zap.String("ticker", ticker), zap.Error(err))
			} else {
				log.Error("failed to fetch daily series",
					zap.String("ticker", ticker), zap.Error(err))
			}
			continue // ticker is excluded from the comparison
		}
		log.Info("fetched daily series",
			zap.String("ticker", ticker),
			zap.Int("rows", table.Len()),
			zap.Time("window_start", start),
			zap.Time("window_end", end),
		)

		persist(cfg, log, openStore, table, now())
		tables = append(tables, table)
	}

	if len(tables) != 2 {
		return fmt.Errorf("could not retrieve data for both tickers: got %d of 2", len(tables))
	}

	return report(cfg, log, tables[0], tables[1])
}

// persist writes the series to the CSV sink and the ticker's database.
// Failures are logged, not returned: a persisted-nothing run still compares.
func persist(cfg *config.Config, log *zap.Logger, openStore StoreOpener, table *series.Table, now time.Time) {
	path, err := csvsink.WriteSeries(cfg.Output.Dir, table, now)
	switch {
	case errors.Is(err, csvsink.ErrEmptyTable):
		log.Warn("nothing to write", zap.String("ticker", table.Symbol))
	case err != nil:
		log.Error("failed to write series CSV", zap.String("ticker", table.Symbol), zap.Error(err))
	default:
		log.Info("data saved to CSV", zap.String("ticker", table.Symbol), zap.String("path", path))
	}

	store, closeStore, err := openStore(table.Symbol)
	if err != nil {
		if errors.Is(err, postgres.ErrNoDatabaseForTicker) {
			log.Warn("no database mapped for ticker, skipping store upload",
				zap.String("ticker", table.Symbol))
		} else if errors.Is(err, postgres.ErrAuthFailed) {
			log.Error("store rejected credentials", zap.String("ticker", table.Symbol), zap.Error(err))
		} else {
			log.Error("failed to connect to store", zap.String("ticker", table.Symbol), zap.Error(err))
		}
		return
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close store connection", zap.String("ticker", table.Symbol), zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	written, err := store.UpsertPrices(ctx, table)
	if err != nil {
		// Remaining rows of the batch were aborted; the count says where.
		log.Error("upsert aborted",
			zap.String("ticker", table.Symbol),
			zap.Int("written", written),
			zap.Int("total", table.Len()),
			zap.Error(err))
		return
	}
	log.Info("uploaded records to store",
		zap.String("ticker", table.Symbol), zap.Int("records", written))
}

// report compares the two series and writes the combined CSV and the chart.
func report(cfg *config.Config, log *zap.Logger, a, b *series.Table) error {
	result, err := compare.Compare(a, b)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if err := csvsink.WriteComparison(cfg.Output.ComparisonFile, result); err != nil {
		return fmt.Errorf("write comparison table: %w", err)
	}
	log.Info("comparison table written", zap.String("path", cfg.Output.ComparisonFile))

	if err := compare.RenderChart(result, cfg.Output.ChartFile); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	log.Info("chart written", zap.String("path", cfg.Output.ChartFile))

	m := result.Metrics
	log.Info("comparative analysis",
		zap.String("ticker_a", result.SymbolA),
		zap.String("ticker_b", result.SymbolB),
		zap.Int("joined_days", len(result.Rows)),
		zap.Float64("returns_correlation", m.Correlation),
		zap.Float64("volatility_a", m.VolatilityA),
		zap.Float64("volatility_b", m.VolatilityB),
		zap.Float64("total_return_a_pct", m.TotalReturnA),
		zap.Float64("total_return_b_pct", m.TotalReturnB),
	)
	return nil
}

// RunFromStore rebuilds the comparison from rows already persisted to
// Postgres instead of calling the provider.
func RunFromStore(cfg *config.Config, log *zap.Logger, start, end time.Time) error {
	env := cfg.Log.Environment

	var tables []*series.Table
	for _, ticker := range cfg.Symbols.Pair {
		client, err := postgres.OpenForTicker(cfg.Postgres, cfg.Symbols.Databases, env, ticker, false)
		if err != nil {
			return fmt.Errorf("open store for %s: %w", ticker, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		records, err := client.PricesByDateRange(ctx, ticker, start, end)
		cancel()
		if cerr := client.Close(); cerr != nil {
			log.Warn("failed to close store connection", zap.String("ticker", ticker), zap.Error(cerr))
		}
		if err != nil {
			return fmt.Errorf("read prices for %s: %w", ticker, err)
		}

		table, err := postgres.TableFromRecords(ticker, records)
		if err != nil {
			return fmt.Errorf("rebuild series for %s: %w", ticker, err)
		}
		log.Info("loaded series from store", zap.String("ticker", ticker), zap.Int("rows", table.Len()))
		tables = append(tables, table)
	}

	return report(cfg, log, tables[0], tables[1])
}
