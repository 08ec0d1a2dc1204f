package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockquote/internal/fetcher"
	"stockquote/internal/ratelimit"
)

func TestClient_Get_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickers" {
			t.Errorf("path = %q, want /tickers", r.URL.Path)
		}
		if got := r.URL.Query().Get("access_key"); got != "secret" {
			t.Errorf("access_key = %q, want secret", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	client := fetcher.NewHTTPClient(server.URL)
	defer client.Close()

	var out payload
	err := client.Get(context.Background(), "/tickers", map[string]string{"access_key": "secret"}, &out)
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if !out.OK {
		t.Error("Get() did not decode the response body")
	}
}

func TestClient_Get_StatusErrors(t *testing.T) {
	tests := []struct {
		status   int
		wantType fetcher.ErrorType
	}{
		{http.StatusTooManyRequests, fetcher.ErrorTypeRateLimit},
		{http.StatusInternalServerError, fetcher.ErrorTypeServer},
		{http.StatusUnauthorized, fetcher.ErrorTypeClient},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := fetcher.NewHTTPClient(server.URL)
			defer client.Close()

			err := client.Get(context.Background(), "/intraday", nil, &payload{})

			fe, ok := err.(*fetcher.FetchError)
			if !ok {
				t.Fatalf("Get() error = %T %v, want *FetchError", err, err)
			}
			if fe.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", fe.Type, tt.wantType)
			}
			if fe.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", fe.StatusCode, tt.status)
			}
		})
	}
}

func TestClient_Get_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := fetcher.NewHTTPClient(server.URL)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.Get(ctx, "/tickers", nil, &payload{}); err == nil {
		t.Error("Get() expected error for cancelled context, got nil")
	}
}

func TestClient_Get_WaitsOnRateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	limiter := ratelimit.New()
	limiter.SetLimit(ratelimit.APIMarketstack, 0.001, 1)

	client := fetcher.NewHTTPClient(server.URL, fetcher.WithRateLimiter(limiter, ratelimit.APIMarketstack))
	defer client.Close()

	if err := client.Get(context.Background(), "/tickers", nil, &payload{}); err != nil {
		t.Fatalf("first Get() returned unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Get(ctx, "/tickers", nil, &payload{})
	fe, ok := err.(*fetcher.FetchError)
	if !ok || fe.Type != fetcher.ErrorTypeTimeout {
		t.Errorf("second Get() error = %v, want timeout FetchError", err)
	}
}
