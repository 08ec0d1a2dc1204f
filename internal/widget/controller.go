// Package widget holds the per-widget state machine that drives a fetch
// cycle from symbol to displayed quote.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"stockquote/internal/metrics"
	"stockquote/internal/quote"
)

//go:generate mockgen -source=controller.go -destination=mock_sources_test.go -package=widget

// TickerResolver maps a symbol to exchange metadata.
type TickerResolver interface {
	Resolve(ctx context.Context, symbol string) (quote.ExchangeInfo, error)
}

// QuoteSource returns the latest raw quote of a resolved symbol.
type QuoteSource interface {
	FetchLatest(ctx context.Context, symbol string) (quote.Record, error)
}

// ResolverFunc adapts a function to TickerResolver.
type ResolverFunc func(ctx context.Context, symbol string) (quote.ExchangeInfo, error)

func (f ResolverFunc) Resolve(ctx context.Context, symbol string) (quote.ExchangeInfo, error) {
	return f(ctx, symbol)
}

// QuoteSourceFunc adapts a function to QuoteSource.
type QuoteSourceFunc func(ctx context.Context, symbol string) (quote.Record, error)

func (f QuoteSourceFunc) FetchLatest(ctx context.Context, symbol string) (quote.Record, error) {
	return f(ctx, symbol)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records finished cycles on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(c *Controller) {
		c.metrics = rec
	}
}

// Controller owns the displayed state of one widget. A cycle starts only when
// the symbol changes; every commit carries the generation and symbol the
// cycle was started for and is dropped if either is no longer current.
type Controller struct {
	resolver TickerResolver
	quotes   QuoteSource
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	mu      sync.Mutex
	mounted bool
	gen     uint64
	state   State

	wg sync.WaitGroup
}

// NewController creates an idle controller.
func NewController(resolver TickerResolver, quotes QuoteSource, opts ...Option) *Controller {
	c := &Controller{
		resolver: resolver,
		quotes:   quotes,
		logger:   slog.Default(),
		now:      time.Now,
		state:    defaultState("", PhaseIdle),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the displayed state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Symbol returns the current symbol.
func (c *Controller) Symbol() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Symbol
}

// SetSymbol starts a cycle in the background if symbol differs from the
// current one. It reports whether a cycle was started.
func (c *Controller) SetSymbol(ctx context.Context, symbol string) bool {
	gen, ok := c.begin(symbol)
	if !ok {
		return false
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(ctx, gen, symbol)
	}()
	return true
}

// Sync runs a cycle for symbol on the calling goroutine if the symbol
// changed, then returns the displayed state.
func (c *Controller) Sync(ctx context.Context, symbol string) State {
	if gen, ok := c.begin(symbol); ok {
		c.run(ctx, gen, symbol)
	}
	return c.State()
}

// Wait blocks until every cycle started by SetSymbol has returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) begin(symbol string) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted && c.state.Symbol == symbol {
		return 0, false
	}

	c.mounted = true
	c.gen++
	c.state = defaultState(symbol, PhaseResolving)
	c.state.UpdatedAt = c.now()
	return c.gen, true
}

// commit applies update if the cycle is still the latest one.
func (c *Controller) commit(gen uint64, symbol string, update func(*State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || symbol != c.state.Symbol {
		return false
	}

	update(&c.state)
	c.state.UpdatedAt = c.now()
	return true
}

func (c *Controller) run(ctx context.Context, gen uint64, symbol string) {
	logger := c.logger.With("symbol", symbol, "cycle_id", uuid.NewString())
	start := time.Now()

	phase := c.cycle(ctx, logger, gen, symbol)
	if phase == "" {
		logger.Debug("discarded stale fetch cycle")
		return
	}

	c.metrics.RecordCycle(string(phase), time.Since(start))
	logger.Debug("fetch cycle finished", "phase", phase, "elapsed", time.Since(start))
}

// cycle runs resolve then quote and commits the outcome. It returns the
// committed terminal phase, or "" if the cycle went stale.
func (c *Controller) cycle(ctx context.Context, logger *slog.Logger, gen uint64, symbol string) Phase {
	exchange, err := c.resolver.Resolve(ctx, symbol)
	switch {
	case errors.Is(err, quote.ErrSymbolNotFound):
		logger.Warn("symbol not found, skipping quote fetch")
		return c.settle(gen, symbol, PhaseNotFound, quote.DefaultExchange(), quote.Snapshot{}, nil)
	case err != nil:
		logger.Error("ticker lookup failed", "error", err)
		return c.settle(gen, symbol, PhaseFailed, quote.DefaultExchange(), quote.Snapshot{}, err)
	}

	ok := c.commit(gen, symbol, func(s *State) {
		s.Phase = PhaseFetchingQuote
		s.Exchange = exchange
	})
	if !ok {
		return ""
	}

	record, err := c.quotes.FetchLatest(ctx, symbol)
	switch {
	case errors.Is(err, quote.ErrNoData):
		logger.Warn("no quote data for symbol")
		return c.settle(gen, symbol, PhaseNoData, exchange, quote.Snapshot{}, nil)
	case err != nil:
		logger.Error("quote fetch failed", "error", err)
		return c.settle(gen, symbol, PhaseFailed, exchange, quote.Snapshot{}, err)
	}

	snapshot := quote.Transform(record)
	phase := c.settle(gen, symbol, PhaseReady, exchange, snapshot, nil)
	if phase == PhaseReady {
		c.metrics.RecordLastPrice(symbol, record.Last)
	}
	return phase
}

func (c *Controller) settle(gen uint64, symbol string, phase Phase, exchange quote.ExchangeInfo, snapshot quote.Snapshot, err error) Phase {
	ok := c.commit(gen, symbol, func(s *State) {
		s.Phase = phase
		s.Exchange = exchange
		s.Quote = snapshot
		s.Err = err
	})
	if !ok {
		return ""
	}
	return phase
}
