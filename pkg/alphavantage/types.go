package alphavantage

// DailyResponse represents the TIME_SERIES_DAILY payload from the Alpha
// Vantage query API. The time series is an object keyed by date string
// ("2006-01-02"), each value a bar with numbered field labels.
type DailyResponse struct {
	// MetaData carries symbol, last-refreshed date and timezone.
	MetaData map[string]string `json:"Meta Data"`

	// TimeSeries is the main payload; absent on structural errors.
	TimeSeries map[string]DailyBar `json:"Time Series (Daily)"`

	// Note carries rate-limit notices; ErrorMessage invalid-call reports.
	// Both arrive with 200 OK and no TimeSeries key.
	Note         string `json:"Note,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
}

// DailyBar is one day of OHLCV data as Alpha Vantage encodes it: every
// numeric field is a string.
type DailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
