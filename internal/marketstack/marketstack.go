// Package marketstack resolves ticker symbols and fetches intraday quotes
// from the marketstack API. Both calls go through a fetcher.Getter, normally
// a Retrier, so rate-limited requests are retried before surfacing.
package marketstack

import (
	"log/slog"
	"time"
)

const (
	tickersPath  = "/tickers"
	intradayPath = "/intraday"

	quoteInterval = "15min"
	dateLayout    = "2006-01-02"
)

// Option configures the resolver and the quote fetcher.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
	now    func() time.Time
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger for warnings about empty results.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now when computing the intraday date window.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}
