package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"stockquote/internal/config"
	"stockquote/internal/coordinator"
	"stockquote/internal/fetcher"
	"stockquote/internal/marketstack"
	"stockquote/internal/metrics"
	"stockquote/internal/ratelimit"
	"stockquote/internal/server"
	"stockquote/internal/widget"
)

func init() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	rec := metrics.New()
	coord, closeClient := newCoordinator(cfg, logger, rec)
	defer closeClient()

	// Add timeout to prevent hanging indefinitely
	fetchCtx, fetchCancel := context.WithTimeout(ctx, 30*time.Second)
	defer fetchCancel()

	fmt.Println("Fetching stock quotes...")
	fmt.Println("================================================")
	if err := coord.Run(fetchCtx); err != nil {
		log.Fatalf("Coordinator failed: %v", err)
	}
	fmt.Println("================================================")

	if cfg.ListenAddr == "" {
		fmt.Println("All widgets settled!")
		return
	}

	if err := serve(ctx, cfg.ListenAddr, server.NewServer(coord, rec.Handler(), logger)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	coord.Wait()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newCoordinator wires one widget per configured symbol onto a shared
// marketstack client. The returned func closes the client.
func newCoordinator(cfg *config.Config, logger *slog.Logger, rec *metrics.Recorder) (*coordinator.Coordinator, func()) {
	limiter := ratelimit.New()
	limiter.SetLimit(ratelimit.APIMarketstack, cfg.RateLimitRPS, max(1, int(cfg.RateLimitRPS)))

	client := fetcher.NewHTTPClient(cfg.BaseURL,
		fetcher.WithTimeout(cfg.RequestTimeout),
		fetcher.WithRateLimiter(limiter, ratelimit.APIMarketstack),
	)
	api := fetcher.NewRetrier(client,
		fetcher.WithMaxRetries(cfg.RetryCount),
		fetcher.WithBaseDelay(cfg.RetryBaseDelay),
		fetcher.WithLogger(logger),
		fetcher.WithMetrics(rec),
	)

	resolver := marketstack.NewTickerResolver(api, cfg.AccessKey, marketstack.WithLogger(logger))
	quotes := marketstack.NewQuoteFetcher(api, cfg.AccessKey, marketstack.WithLogger(logger))

	widgets := make([]coordinator.Widget, 0, len(cfg.StockSymbols))
	for i, symbol := range cfg.StockSymbols {
		widgets = append(widgets, coordinator.Widget{
			ID:     fmt.Sprintf("widget-%d", i+1),
			Symbol: symbol,
			Controller: widget.NewController(resolver, quotes,
				widget.WithLogger(logger),
				widget.WithMetrics(rec),
			),
		})
	}

	return coordinator.New(widgets), func() { _ = client.Close() }
}

// serve runs the HTTP surface until ctx is cancelled.
func serve(ctx context.Context, addr string, s *server.Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(s),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving widgets", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
