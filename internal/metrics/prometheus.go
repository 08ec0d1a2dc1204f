package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects pipeline metrics on its own registry. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	retries      *prometheus.CounterVec
	cycles       *prometheus.CounterVec
	cycleLatency *prometheus.HistogramVec
	lastPrice    *prometheus.GaugeVec
}

// New creates a Recorder backed by a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockquote_api_requests_total",
				Help: "Market-data API attempts by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockquote_api_retries_total",
				Help: "Retries scheduled after a rate-limited response",
			},
			[]string{"endpoint"},
		),
		cycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockquote_fetch_cycles_total",
				Help: "Completed widget fetch cycles by terminal phase",
			},
			[]string{"phase"},
		),
		cycleLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockquote_fetch_cycle_duration_seconds",
				Help:    "Duration of widget fetch cycles in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		lastPrice: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockquote_last_price",
				Help: "Last price committed for a symbol",
			},
			[]string{"symbol"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordRequest counts one API attempt. Failures are labelled by error kind.
func (r *Recorder) RecordRequest(endpoint string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = outcomeOf(err)
	}
	r.requests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordRetry counts a scheduled retry.
func (r *Recorder) RecordRetry(endpoint string) {
	if r == nil {
		return
	}
	r.retries.WithLabelValues(endpoint).Inc()
}

// RecordCycle records a finished fetch cycle.
func (r *Recorder) RecordCycle(phase string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.cycles.WithLabelValues(phase).Inc()
	r.cycleLatency.WithLabelValues(phase).Observe(elapsed.Seconds())
}

// RecordLastPrice records the last committed price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	if r == nil {
		return
	}
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// kinder is satisfied by errors that know their own category label.
type kinder interface {
	Kind() string
}

func outcomeOf(err error) string {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "error"
}
