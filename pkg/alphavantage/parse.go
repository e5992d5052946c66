package alphavantage

import (
	"strconv"
	"time"

	"stockcompare/internal/series"
)

// ParseDaily converts the date-keyed TIME_SERIES_DAILY rows to []series.Point.
// It safely skips rows with an unparseable date or field rather than failing
// the whole response.
func ParseDaily(symbol string, rows map[string]DailyBar) []series.Point {
	out := make([]series.Point, 0, len(rows))

	for dateStr, bar := range rows {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
		if err != nil {
			continue // skip malformed date key
		}
		open, err := strconv.ParseFloat(bar.Open, 64)
		if err != nil {
			continue
		}
		high, err := strconv.ParseFloat(bar.High, 64)
		if err != nil {
			continue
		}
		low, err := strconv.ParseFloat(bar.Low, 64)
		if err != nil {
			continue
		}
		closeVal, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseInt(bar.Volume, 10, 64)
		if err != nil {
			continue
		}

		out = append(out, series.Point{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closeVal,
			Volume: volume,
			Symbol: symbol,
		})
	}
	return out
}
