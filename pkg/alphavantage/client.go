package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stockcompare/internal/series"
)

// ErrBadShape is returned when the provider answered 200 OK but the body is
// missing the daily time series object (rate-limit note, invalid symbol, or
// an unexpected payload). Match with errors.Is to distinguish structural
// failures from transport ones.
var ErrBadShape = errors.New("alphavantage: response missing daily time series")

type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

// DailySeries fetches the full daily history for symbol, restricts it to
// calendar days within [start, end] (inclusive), and returns the rows sorted
// ascending with every row tagged with the symbol.
func (c *RESTClient) DailySeries(ctx context.Context, symbol string, start, end time.Time) (*series.Table, error) {
	if symbol == "" {
		return nil, fmt.Errorf("alphavantage: empty symbol")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("alphavantage: window end before start")
	}

	endpoint := fmt.Sprintf(
		"%s/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s&outputsize=full",
		c.baseURL,
		url.QueryEscape(symbol),
		url.QueryEscape(c.apiKey),
	)

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Execute the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	// Check HTTP status code
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alphavantage error: status %d: %s", resp.StatusCode, body)
	}

	var raw DailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// The daily series key is the sole structural success signal. Error
	// messages and rate-limit notes come back as 200 OK without it.
	if raw.TimeSeries == nil {
		if raw.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrBadShape, symbol, raw.ErrorMessage)
		}
		if raw.Note != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrBadShape, symbol, raw.Note)
		}
		return nil, fmt.Errorf("%w: %s", ErrBadShape, symbol)
	}

	table, err := series.NewTable(symbol, ParseDaily(symbol, raw.TimeSeries))
	if err != nil {
		return nil, fmt.Errorf("build series: %w", err)
	}
	return table.Window(start, end)
}
