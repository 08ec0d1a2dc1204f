package marketstack

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"stockquote/internal/fetcher"
	"stockquote/internal/quote"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 1, 9, 30, 0, 0, time.Local)
}

func TestQuoteFetcher_FetchLatest_Success(t *testing.T) {
	body := `{
		"pagination": {"limit": 1, "offset": 0, "count": 1, "total": 40},
		"data": [
			{"open": 148.0, "high": 151.2, "low": 147.9, "last": 150.0, "close": null, "volume": 1200, "date": "2024-01-01T10:00:00+0000", "symbol": "TEST", "exchange": "IEXG"}
		]
	}`

	qf := NewQuoteFetcher(newTestAPI(t, jsonHandler(http.StatusOK, body)), "test_key", WithClock(fixedClock))

	got, err := qf.FetchLatest(context.Background(), "TEST")
	if err != nil {
		t.Fatalf("FetchLatest() returned unexpected error: %v", err)
	}

	want := quote.Record{Symbol: "TEST", Last: 150, Open: 148, Date: "2024-01-01T10:00:00+0000"}
	if got != want {
		t.Errorf("FetchLatest() = %+v, want %+v", got, want)
	}
}

func TestQuoteFetcher_FetchLatest_VerifyQueryParams(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/intraday" {
			t.Errorf("path = %q, want /intraday", r.URL.Path)
		}

		want := map[string]string{
			"access_key": "test_api_key_123",
			"symbols":    "GOOGL",
			"interval":   "15min",
			"date_from":  "2024-02-29",
			"date_to":    "2024-03-01",
			"limit":      "1",
		}
		q := r.URL.Query()
		for key, value := range want {
			if got := q.Get(key); got != value {
				t.Errorf("%s = %q, want %q", key, got, value)
			}
		}
		if len(q) != len(want) {
			t.Errorf("query = %v, want exactly %d parameters", q, len(want))
		}

		jsonHandler(http.StatusOK, `{"data": [{"last": 1, "open": 1, "date": "2024-03-01T09:15:00+0000"}]}`)(w, r)
	})

	qf := NewQuoteFetcher(newTestAPI(t, handler), "test_api_key_123", WithClock(fixedClock))
	if _, err := qf.FetchLatest(context.Background(), "GOOGL"); err != nil {
		t.Fatalf("FetchLatest() returned unexpected error: %v", err)
	}
}

func TestQuoteFetcher_FetchLatest_NoData(t *testing.T) {
	for _, body := range []string{`{"data": []}`, `{}`} {
		t.Run(body, func(t *testing.T) {
			qf := NewQuoteFetcher(newTestAPI(t, jsonHandler(http.StatusOK, body)), "test_key")

			_, err := qf.FetchLatest(context.Background(), "TEST")
			if !errors.Is(err, quote.ErrNoData) {
				t.Errorf("FetchLatest() error = %v, want ErrNoData", err)
			}
		})
	}
}

func TestQuoteFetcher_FetchLatest_RateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	qf := NewQuoteFetcher(newTestAPI(t, handler), "test_key")

	_, err := qf.FetchLatest(context.Background(), "TEST")
	if !fetcher.IsRateLimited(err) {
		t.Fatalf("FetchLatest() error = %v, want rate limit error", err)
	}
	if n := calls.Load(); n != 4 {
		t.Errorf("server called %d times, want 4 (1 attempt + 3 retries)", n)
	}
}
