package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "fxconfluence/internal/platform/http"
	"fxconfluence/internal/provider"
)

// Client is the TwelveData API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new TwelveData client
type ClientOptions struct {
	APIKey         string
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int
	RetryPause     time.Duration
}

// NewClient creates a new TwelveData API client
func NewClient(options ClientOptions) *Client {
	return &Client{
		apiKey:  options.APIKey,
		baseURL: "https://api.twelvedata.com",
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			MaxRetries:     options.MaxRetries,
			RetryPause:     options.RetryPause,
		}),
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// timeSeriesResponse is the shape of /time_series. Numeric fields
// arrive as strings and are occasionally empty, so they are parsed by
// hand rather than with `,string` tags.
type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetBars fetches bars from the TwelveData time_series endpoint. An
// unsupported (symbol, interval) pair yields an empty slice, not an
// error.
func (c *Client) GetBars(ctx context.Context, symbol, interval string, outputsize int) ([]provider.RawBar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(outputsize))
	q.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "/time_series?" + q.Encode()

	c.logger.Debug().Str("symbol", symbol).Str("interval", interval).Msg("Fetching bars")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if data.Status == "error" {
		// 400-class codes mean the pair/interval is not available,
		// which is an empty result, not a failure.
		if data.Code >= 400 && data.Code < 500 {
			c.logger.Warn().
				Str("symbol", symbol).
				Str("interval", interval).
				Str("message", data.Message).
				Msg("pair not available from source")
			return nil, nil
		}
		return nil, fmt.Errorf("Twelve Data API error: %s", data.Message)
	}

	bars := make([]provider.RawBar, 0, len(data.Values))
	for _, v := range data.Values {
		ts, err := parseDatetime(v.Datetime)
		if err != nil {
			continue
		}
		bar := provider.RawBar{
			Time:  ts,
			Open:  parseFloat(v.Open),
			High:  parseFloat(v.High),
			Low:   parseFloat(v.Low),
			Close: parseFloatPtr(v.Close),
		}
		if vol, err := strconv.ParseInt(v.Volume, 10, 64); err == nil {
			bar.Volume = vol
		}
		bars = append(bars, bar)
	}

	c.logger.Debug().Int("count", len(bars)).Msg("Fetched bars")
	return bars, nil
}

// parseDatetime accepts both the intraday and the daily/weekly
// datetime formats TwelveData emits.
func parseDatetime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseFloatPtr(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
