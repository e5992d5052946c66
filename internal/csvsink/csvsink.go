package csvsink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"stockcompare/internal/compare"
	"stockcompare/internal/series"
)

// ErrEmptyTable is returned when a series has no rows: nothing is written
// and no file is created.
var ErrEmptyTable = errors.New("csvsink: nothing to write, series is empty")

var header = []string{"date", "open", "high", "low", "close", "volume", "ticker"}

const dateLayout = "2006-01-02"

// SeriesFilename returns the deterministic per-symbol filename,
// e.g. "SPOT_stock_data_20250115.csv".
func SeriesFilename(symbol string, now time.Time) string {
	return fmt.Sprintf("%s_stock_data_%s.csv", symbol, now.Format("20060102"))
}

// WriteSeries writes the full table to dir under the deterministic filename
// and returns the written path.
func WriteSeries(dir string, t *series.Table, now time.Time) (string, error) {
	if t.IsEmpty() {
		return "", fmt.Errorf("%w: %s", ErrEmptyTable, t.Symbol)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("csvsink: create directory: %w", err)
	}

	path := filepath.Join(dir, SeriesFilename(t.Symbol, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csvsink: create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("csvsink: write header: %w", err)
	}
	for _, p := range t.Points {
		row := []string{
			p.Date.Format(dateLayout),
			formatFloat(p.Open),
			formatFloat(p.High),
			formatFloat(p.Low),
			formatFloat(p.Close),
			strconv.FormatInt(p.Volume, 10),
			p.Symbol,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("csvsink: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csvsink: flush: %w", err)
	}
	return path, nil
}

// ReadSeries reads a file previously written by WriteSeries back into a
// table. The symbol is taken from the ticker column of the first data row.
func ReadSeries(path string) (*series.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvsink: open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvsink: read file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csvsink: %s has no data rows", path)
	}

	var points []series.Point
	symbol := ""
	for _, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("csvsink: expected %d columns, got %d", len(header), len(rec))
		}
		p, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("csvsink: parse row: %w", err)
		}
		if symbol == "" {
			symbol = p.Symbol
		}
		points = append(points, p)
	}
	return series.NewTable(symbol, points)
}

// WriteComparison writes the joined comparison table (date, both closes,
// both normalized indices) to path. Column names carry the symbols, matching
// the per-series files.
func WriteComparison(path string, res *compare.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csvsink: create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvsink: create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	head := []string{
		"date",
		"close_" + res.SymbolA,
		"close_" + res.SymbolB,
		"norm_" + res.SymbolA,
		"norm_" + res.SymbolB,
	}
	if err := w.Write(head); err != nil {
		return fmt.Errorf("csvsink: write header: %w", err)
	}
	for _, row := range res.Rows {
		rec := []string{
			row.Date.Format(dateLayout),
			formatFloat(row.CloseA),
			formatFloat(row.CloseB),
			formatFloat(row.NormA),
			formatFloat(row.NormB),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("csvsink: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvsink: flush: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseRow(rec []string) (series.Point, error) {
	date, err := time.ParseInLocation(dateLayout, rec[0], time.UTC)
	if err != nil {
		return series.Point{}, err
	}
	open, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return series.Point{}, err
	}
	high, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return series.Point{}, err
	}
	low, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return series.Point{}, err
	}
	closeVal, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return series.Point{}, err
	}
	volume, err := strconv.ParseInt(rec[5], 10, 64)
	if err != nil {
		return series.Point{}, err
	}
	return series.Point{
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closeVal,
		Volume: volume,
		Symbol: rec[6],
	}, nil
}
