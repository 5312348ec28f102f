package twelvedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(ClientOptions{
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
		RequestsPerSec: 100,
		MaxRetries:     1,
		RetryPause:     time.Millisecond,
	})
	c.baseURL = serverURL
	return c
}

func TestGetBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "EUR/USD" {
			t.Errorf("symbol query = %q, want EUR/USD", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey query = %q, want test-key", got)
		}
		w.Write([]byte(`{
			"meta": {"symbol": "EUR/USD", "interval": "1day"},
			"values": [
				{"datetime": "2024-01-03", "open": "1.0950", "high": "1.0980", "low": "1.0930", "close": "1.0960", "volume": "12345"},
				{"datetime": "2024-01-02", "open": "1.0900", "high": "1.0955", "low": "1.0890", "close": "1.0945", "volume": ""},
				{"datetime": "bogus", "open": "1", "high": "1", "low": "1", "close": "1", "volume": "1"}
			],
			"status": "ok"
		}`))
	}))
	defer srv.Close()

	bars, err := newTestClient(srv.URL).GetBars(context.Background(), "EUR/USD", "1day", 500)
	if err != nil {
		t.Fatalf("GetBars() error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2 (unparseable datetime dropped)", len(bars))
	}
	if bars[0].Close == nil || *bars[0].Close != 1.0960 {
		t.Errorf("bars[0].Close = %v, want 1.0960", bars[0].Close)
	}
	if bars[0].Volume != 12345 {
		t.Errorf("bars[0].Volume = %d, want 12345", bars[0].Volume)
	}
	if bars[1].Volume != 0 {
		t.Errorf("empty volume should parse to 0, got %d", bars[1].Volume)
	}
}

func TestGetBarsUnavailablePair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "error", "code": 404, "message": "symbol not found"}`))
	}))
	defer srv.Close()

	bars, err := newTestClient(srv.URL).GetBars(context.Background(), "XXX/YYY", "1day", 500)
	if err != nil {
		t.Fatalf("a 400-class API code should not be an error, got: %v", err)
	}
	if len(bars) != 0 {
		t.Errorf("got %d bars, want 0", len(bars))
	}
}

func TestGetBarsServerSideError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "error", "code": 500, "message": "internal error"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).GetBars(context.Background(), "EUR/USD", "1day", 500); err == nil {
		t.Fatal("a 500-class API code should surface as an error")
	}
}

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-02 15:04:05", time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), false},
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"02/01/2024", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := parseDatetime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDatetime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("parseDatetime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
