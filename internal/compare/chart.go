package compare

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderChart draws both normalized series as a line plot over the joined
// date axis and writes it as a PNG to path. The renderer needs at least two
// rows; a single-day overlap is reported as an error rather than an empty image.
func RenderChart(res *Result, path string) error {
	if len(res.Rows) < 2 {
		return fmt.Errorf("chart: need at least 2 joined rows, got %d", len(res.Rows))
	}

	dates := res.Dates()
	normA := make([]float64, len(res.Rows))
	normB := make([]float64, len(res.Rows))
	for i, row := range res.Rows {
		normA[i] = row.NormA
		normB[i] = row.NormB
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Normalized Price Performance: %s vs %s", res.SymbolA, res.SymbolB),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Normalized Price (Base=100)",
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: res.SymbolA, XValues: dates, YValues: normA},
			chart.TimeSeries{Name: res.SymbolB, XValues: dates, YValues: normB},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("chart: create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: create file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return nil
}
