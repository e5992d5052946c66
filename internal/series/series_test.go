package series

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTableSortsTagsAndDeduplicates(t *testing.T) {
	points := []Point{
		{Date: day(2024, 3, 6), Close: 121},
		{Date: day(2024, 3, 4), Close: 100},
		{Date: day(2024, 3, 5), Close: 105},
		{Date: day(2024, 3, 5), Close: 110}, // duplicate day, last one wins
	}

	table, err := NewTable("SPOT", points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("expected 3 rows after dedup, got %d", table.Len())
	}
	for i := 1; i < table.Len(); i++ {
		if !table.Points[i-1].Date.Before(table.Points[i].Date) {
			t.Errorf("rows not ascending at index %d", i)
		}
	}
	for _, p := range table.Points {
		if p.Symbol != "SPOT" {
			t.Errorf("row %s not tagged with symbol, got %q", p.Date, p.Symbol)
		}
	}
	if got := table.Points[1].Close; got != 110 {
		t.Errorf("expected duplicate date to keep last value 110, got %v", got)
	}
}

func TestNewTableEmptySymbol(t *testing.T) {
	if _, err := NewTable("", nil); err == nil {
		t.Fatal("expected error for empty symbol, got nil")
	}
}

func TestNewTableNormalizesDates(t *testing.T) {
	// Midday timestamp in a non-UTC zone must collapse to the calendar day.
	loc := time.FixedZone("EST", -5*3600)
	points := []Point{{Date: time.Date(2024, 3, 4, 16, 0, 0, 0, loc), Close: 100}}

	table, err := NewTable("SPOT", points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := table.Points[0].Date, day(2024, 3, 4); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWindowIsInclusive(t *testing.T) {
	// Provider response covering d0..d5; window [d1, d2] keeps exactly two rows.
	var points []Point
	for i := 0; i < 6; i++ {
		points = append(points, Point{Date: day(2024, 3, 4+i), Close: float64(100 + i)})
	}
	table, err := NewTable("SIRI", points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := table.Window(day(2024, 3, 5), day(2024, 3, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if !got.Points[0].Date.Equal(day(2024, 3, 5)) || !got.Points[1].Date.Equal(day(2024, 3, 6)) {
		t.Errorf("unexpected window rows: %v", got.Dates())
	}
}

func TestWindowEndBeforeStart(t *testing.T) {
	table, _ := NewTable("SPOT", []Point{{Date: day(2024, 3, 4)}})
	if _, err := table.Window(day(2024, 3, 6), day(2024, 3, 5)); err == nil {
		t.Fatal("expected error for end before start, got nil")
	}
}

func TestWindowCanBeEmpty(t *testing.T) {
	table, _ := NewTable("SPOT", []Point{{Date: day(2024, 3, 4)}})
	got, err := table.Window(day(2024, 4, 1), day(2024, 4, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("expected empty window, got %d rows", got.Len())
	}
}
