package fetcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"stockquote/internal/metrics"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultBaseDelay is the first backoff delay; each following one doubles.
	DefaultBaseDelay = 1 * time.Second

	maxBackoffInterval = 30 * time.Second
)

// SleepFunc suspends the caller for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Retrier wraps a Getter and retries requests rejected with HTTP 429.
// Every other failure is returned to the caller immediately.
type Retrier struct {
	next       Getter
	maxRetries int
	baseDelay  time.Duration
	sleep      SleepFunc
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// RetryOption configures a Retrier.
type RetryOption func(*Retrier)

// WithMaxRetries sets how many times a rate-limited request is retried.
func WithMaxRetries(n int) RetryOption {
	return func(r *Retrier) {
		if n >= 0 {
			r.maxRetries = n
		}
	}
}

// WithBaseDelay sets the first backoff delay.
func WithBaseDelay(d time.Duration) RetryOption {
	return func(r *Retrier) {
		if d > 0 {
			r.baseDelay = d
		}
	}
}

// WithSleep replaces the wait between attempts.
func WithSleep(sleep SleepFunc) RetryOption {
	return func(r *Retrier) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// WithLogger sets the logger used for retry and failure messages.
func WithLogger(logger *slog.Logger) RetryOption {
	return func(r *Retrier) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records attempts and retries on rec.
func WithMetrics(rec *metrics.Recorder) RetryOption {
	return func(r *Retrier) {
		r.metrics = rec
	}
}

// NewRetrier creates a Retrier in front of next.
func NewRetrier(next Getter, opts ...RetryOption) *Retrier {
	r := &Retrier{
		next:       next,
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
		sleep:      sleepContext,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get implements Getter. The delay before retry n is baseDelay * 2^(n-1),
// independent of anything the server sent back.
func (r *Retrier) Get(ctx context.Context, path string, params map[string]string, out any) error {
	schedule := r.newSchedule()

	for attempt := 0; ; attempt++ {
		err := r.next.Get(ctx, path, params, out)
		r.metrics.RecordRequest(path, err)
		if err == nil {
			return nil
		}

		if !IsRateLimited(err) || attempt >= r.maxRetries {
			r.logger.Error("request failed",
				"path", path,
				"attempt", attempt+1,
				"status_code", StatusCode(err),
				"error", err)
			return err
		}

		delay := schedule.NextBackOff()
		r.logger.Warn("rate limited, retrying",
			"path", path,
			"attempt", attempt+1,
			"retries_left", r.maxRetries-attempt,
			"delay", delay)
		r.metrics.RecordRetry(path)

		if err := r.sleep(ctx, delay); err != nil {
			r.logger.Error("retry wait aborted", "path", path, "error", err)
			return NewTimeoutError(err)
		}
	}
}

func (r *Retrier) newSchedule() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     r.baseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         maxBackoffInterval,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
