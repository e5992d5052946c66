package compare

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"stockcompare/internal/series"
)

// ErrEmptyOverlap is returned when the two series share no trading days.
// Normalization divides by the first joined close, so at least one common
// date is required.
var ErrEmptyOverlap = errors.New("compare: no overlapping dates between series")

// Row is one date of the joined comparison table. Norm values are rebased so
// the first joined date equals 100 for both series.
type Row struct {
	Date   time.Time
	CloseA float64
	CloseB float64
	NormA  float64
	NormB  float64
}

// Metrics summarizes relative performance over the joined window.
// Volatility is the sample standard deviation of daily returns; total return
// is expressed in percentage points of the normalized index (norm[last]-100).
type Metrics struct {
	Correlation  float64
	VolatilityA  float64
	VolatilityB  float64
	TotalReturnA float64
	TotalReturnB float64
}

// Result holds the full output of a comparison run.
type Result struct {
	SymbolA string
	SymbolB string
	Rows    []Row

	// Day-over-day returns, one entry per row after the first:
	// ReturnsA[i] = CloseA[i+1]/CloseA[i] - 1.
	ReturnsA []float64
	ReturnsB []float64

	Metrics Metrics
}

// Compare inner-joins the two tables on date and computes normalized
// indices, daily returns, and summary metrics. Dates present in only one
// table are dropped. The computation is pure arithmetic: identical inputs
// produce identical output.
func Compare(a, b *series.Table) (*Result, error) {
	if a.IsEmpty() || b.IsEmpty() {
		return nil, fmt.Errorf("%w: %s has %d rows, %s has %d rows",
			ErrEmptyOverlap, a.Symbol, a.Len(), b.Symbol, b.Len())
	}

	closeB := make(map[time.Time]float64, b.Len())
	for _, p := range b.Points {
		closeB[p.Date] = p.Close
	}

	var rows []Row
	for _, p := range a.Points {
		cb, ok := closeB[p.Date]
		if !ok {
			continue
		}
		rows = append(rows, Row{Date: p.Date, CloseA: p.Close, CloseB: cb})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s vs %s", ErrEmptyOverlap, a.Symbol, b.Symbol)
	}

	// Rebase both series to 100 at the first joined date. That date may be
	// later than the first date of either raw table.
	baseA, baseB := rows[0].CloseA, rows[0].CloseB
	for i := range rows {
		rows[i].NormA = rows[i].CloseA / baseA * 100
		rows[i].NormB = rows[i].CloseB / baseB * 100
	}

	retA := make([]float64, 0, len(rows)-1)
	retB := make([]float64, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		retA = append(retA, rows[i].CloseA/rows[i-1].CloseA-1)
		retB = append(retB, rows[i].CloseB/rows[i-1].CloseB-1)
	}

	last := rows[len(rows)-1]
	m := Metrics{
		TotalReturnA: last.NormA - 100,
		TotalReturnB: last.NormB - 100,
	}
	if len(retA) > 0 {
		m.Correlation = stat.Correlation(retA, retB, nil)
		m.VolatilityA = stat.StdDev(retA, nil)
		m.VolatilityB = stat.StdDev(retB, nil)
	}

	return &Result{
		SymbolA:  a.Symbol,
		SymbolB:  b.Symbol,
		Rows:     rows,
		ReturnsA: retA,
		ReturnsB: retB,
		Metrics:  m,
	}, nil
}

// Dates returns the joined date axis in order.
func (r *Result) Dates() []time.Time {
	out := make([]time.Time, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Date
	}
	return out
}
