package alphavantage

import "testing"

func TestParseDailySkipsInvalidRows(t *testing.T) {
	rows := map[string]DailyBar{
		"2024-03-04": {Open: "101", High: "102", Low: "100", Close: "101.5", Volume: "1100"},
		"not-a-date": {Open: "1", High: "1", Low: "1", Close: "1", Volume: "1"},
		"2024-03-05": {Open: "bad", High: "103", Low: "101", Close: "102.5", Volume: "1200"},
		"2024-03-06": {Open: "103", High: "104", Low: "102", Close: "103.5", Volume: "12.5"}, // non-integer volume
	}

	points := ParseDaily("SPOT", rows)
	if len(points) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(points))
	}
	p := points[0]
	if p.Date.Format("2006-01-02") != "2024-03-04" {
		t.Errorf("unexpected date: %v", p.Date)
	}
	if p.Close != 101.5 || p.Volume != 1100 || p.Symbol != "SPOT" {
		t.Errorf("unexpected point: %+v", p)
	}
}
