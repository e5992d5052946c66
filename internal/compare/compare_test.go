package compare_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockcompare/internal/compare"
	"stockcompare/internal/series"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func table(t *testing.T, symbol string, closes map[int]float64) *series.Table {
	t.Helper()
	var points []series.Point
	for d, c := range closes {
		points = append(points, series.Point{Date: day(d), Close: c, Open: c, High: c, Low: c, Volume: 1})
	}
	tbl, err := series.NewTable(symbol, points)
	require.NoError(t, err)
	return tbl
}

func TestCompareConcreteScenario(t *testing.T) {
	// A closes [100, 110, 121], B closes [50, 55, 49.5] on the same dates.
	a := table(t, "SPOT", map[int]float64{4: 100, 5: 110, 6: 121})
	b := table(t, "SIRI", map[int]float64{4: 50, 5: 55, 6: 49.5})

	res, err := compare.Compare(a, b)
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	wantNormA := []float64{100, 110, 121}
	wantNormB := []float64{100, 110, 99}
	for i, row := range res.Rows {
		require.InDelta(t, wantNormA[i], row.NormA, 1e-9, "norm_a row %d", i)
		require.InDelta(t, wantNormB[i], row.NormB, 1e-9, "norm_b row %d", i)
	}

	require.InDelta(t, 21, res.Metrics.TotalReturnA, 1e-9)
	require.InDelta(t, -1, res.Metrics.TotalReturnB, 1e-9)

	require.Len(t, res.ReturnsA, 2)
	require.InDelta(t, 0.10, res.ReturnsA[0], 1e-9)
	require.InDelta(t, 0.10, res.ReturnsA[1], 1e-9)
	require.InDelta(t, 0.10, res.ReturnsB[0], 1e-9)
	require.InDelta(t, -0.10, res.ReturnsB[1], 1e-9)
}

func TestCompareJoinedDatesEqualIntersection(t *testing.T) {
	a := table(t, "SPOT", map[int]float64{4: 100, 5: 101, 6: 102, 7: 103})
	b := table(t, "SIRI", map[int]float64{5: 50, 7: 51, 8: 52})

	res, err := compare.Compare(a, b)
	require.NoError(t, err)

	got := res.Dates()
	require.Equal(t, []time.Time{day(5), day(7)}, got)
}

func TestCompareFirstRowNormalizesTo100(t *testing.T) {
	// B is missing A's first date, so the base row is the first JOINED date,
	// not the first date of either raw table.
	a := table(t, "SPOT", map[int]float64{4: 80, 5: 110, 6: 121})
	b := table(t, "SIRI", map[int]float64{5: 55, 6: 49.5})

	res, err := compare.Compare(a, b)
	require.NoError(t, err)
	require.True(t, res.Rows[0].Date.Equal(day(5)))
	require.InDelta(t, 100, res.Rows[0].NormA, 1e-9)
	require.InDelta(t, 100, res.Rows[0].NormB, 1e-9)
	require.InDelta(t, 110, res.Rows[1].NormA, 1e-9) // 121/110*100
}

func TestCompareEmptyOverlap(t *testing.T) {
	a := table(t, "SPOT", map[int]float64{4: 100, 5: 110})
	b := table(t, "SIRI", map[int]float64{6: 50, 7: 55})

	_, err := compare.Compare(a, b)
	require.ErrorIs(t, err, compare.ErrEmptyOverlap)
}

func TestCompareEmptyInput(t *testing.T) {
	a := table(t, "SPOT", map[int]float64{4: 100})
	b := table(t, "SIRI", nil)

	_, err := compare.Compare(a, b)
	require.ErrorIs(t, err, compare.ErrEmptyOverlap)
}

func TestCompareCorrelation(t *testing.T) {
	// Identical return sequences correlate perfectly.
	a := table(t, "SPOT", map[int]float64{4: 100, 5: 110, 6: 99, 7: 108.9})
	b := table(t, "SIRI", map[int]float64{4: 50, 5: 55, 6: 49.5, 7: 54.45})

	res, err := compare.Compare(a, b)
	require.NoError(t, err)
	require.InDelta(t, 1.0, res.Metrics.Correlation, 1e-9)

	// Mirrored return sequences correlate perfectly negatively.
	c := table(t, "SIRI", map[int]float64{4: 50, 5: 45, 6: 49.5, 7: 44.55})
	res, err = compare.Compare(a, c)
	require.NoError(t, err)
	require.InDelta(t, -1.0, res.Metrics.Correlation, 1e-9)
}

func TestCompareVolatility(t *testing.T) {
	// Returns are [0.1, -0.1, 0.1]; sample stddev is sqrt(1/75).
	a := table(t, "SPOT", map[int]float64{4: 100, 5: 110, 6: 99, 7: 108.9})
	b := table(t, "SIRI", map[int]float64{4: 50, 5: 55, 6: 49.5, 7: 54.45})

	res, err := compare.Compare(a, b)
	require.NoError(t, err)
	require.InDelta(t, 0.1154700538, res.Metrics.VolatilityA, 1e-9)
	require.InDelta(t, 0.1154700538, res.Metrics.VolatilityB, 1e-9)
}

func TestCompareDeterministic(t *testing.T) {
	a := table(t, "SPOT", map[int]float64{4: 100.37, 5: 101.11, 6: 99.42})
	b := table(t, "SIRI", map[int]float64{4: 3.17, 5: 3.29, 6: 3.05})

	first, err := compare.Compare(a, b)
	require.NoError(t, err)
	second, err := compare.Compare(a, b)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRenderChart(t *testing.T) {
	a := table(t, "SPOT", map[int]float64{4: 100, 5: 110, 6: 121})
	b := table(t, "SIRI", map[int]float64{4: 50, 5: 55, 6: 49.5})
	res, err := compare.Compare(a, b)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "charts", "performance.png")
	require.NoError(t, compare.RenderChart(res, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestRenderChartNeedsTwoRows(t *testing.T) {
	a := table(t, "SPOT", map[int]float64{4: 100})
	b := table(t, "SIRI", map[int]float64{4: 50})
	res, err := compare.Compare(a, b)
	require.NoError(t, err)

	err = compare.RenderChart(res, filepath.Join(t.TempDir(), "performance.png"))
	require.Error(t, err)
	require.False(t, errors.Is(err, compare.ErrEmptyOverlap))
}
