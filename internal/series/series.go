package series

import (
	"fmt"
	"sort"
	"time"
)

// Point represents a single daily price bar for one symbol.
type Point struct {
	Date   time.Time `json:"date"`   // Trading day (normalized to midnight UTC)
	Open   float64   `json:"open"`   // Opening price
	High   float64   `json:"high"`   // Highest price of the day
	Low    float64   `json:"low"`    // Lowest price of the day
	Close  float64   `json:"close"`  // Closing price
	Volume int64     `json:"volume"` // Shares traded
	Symbol string    `json:"symbol"` // Ticker symbol (e.g., "SPOT")
}

// Table is a daily price series for a single symbol: ascending by date,
// one row per day. Tables are built once and not mutated afterwards.
type Table struct {
	Symbol string
	Points []Point
}

// Day normalizes a timestamp to midnight UTC so that rows from different
// sources (provider JSON, CSV, database) compare equal on the same calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewTable builds the canonical table for symbol: every point is tagged with
// the symbol and its date normalized, duplicate dates collapse to the last
// occurrence, and the result is sorted ascending by date.
func NewTable(symbol string, points []Point) (*Table, error) {
	if symbol == "" {
		return nil, fmt.Errorf("series: empty symbol")
	}

	byDay := make(map[time.Time]Point, len(points))
	for _, p := range points {
		p.Symbol = symbol
		p.Date = Day(p.Date)
		byDay[p.Date] = p
	}

	out := make([]Point, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return &Table{Symbol: symbol, Points: out}, nil
}

// Window returns a new table restricted to calendar days within
// [start, end], both bounds inclusive.
func (t *Table) Window(start, end time.Time) (*Table, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, fmt.Errorf("series: window end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var out []Point
	for _, p := range t.Points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return &Table{Symbol: t.Symbol, Points: out}, nil
}

// Len returns the number of rows in the table.
func (t *Table) Len() int { return len(t.Points) }

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return t == nil || len(t.Points) == 0 }

// Closes returns the close column in date order.
func (t *Table) Closes() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Close
	}
	return out
}

// Dates returns the date column in order.
func (t *Table) Dates() []time.Time {
	out := make([]time.Time, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Date
	}
	return out
}
