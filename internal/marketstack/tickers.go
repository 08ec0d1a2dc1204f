package marketstack

import (
	"context"
	"fmt"
	"log/slog"

	"stockquote/internal/fetcher"
	"stockquote/internal/quote"
)

// TickersResponse represents the marketstack response for the ticker listing
type TickersResponse struct {
	Data []Ticker `json:"data"`
}

// Ticker is one entry of the listing.
type Ticker struct {
	Symbol        string         `json:"symbol"`
	Name          string         `json:"name"`
	StockExchange *StockExchange `json:"stock_exchange"`
}

// StockExchange is the exchange a ticker trades on.
type StockExchange struct {
	Acronym string `json:"acronym"`
	Name    string `json:"name"`
}

// TickerResolver maps a symbol to its exchange metadata.
type TickerResolver struct {
	api       fetcher.Getter
	accessKey string
	logger    *slog.Logger
}

// NewTickerResolver creates a resolver using api for requests.
func NewTickerResolver(api fetcher.Getter, accessKey string, opts ...Option) *TickerResolver {
	s := newSettings(opts)
	return &TickerResolver{
		api:       api,
		accessKey: accessKey,
		logger:    s.logger,
	}
}

// Resolve fetches the full ticker listing and returns the exchange of the
// first entry whose symbol equals symbol exactly. It returns
// quote.ErrSymbolNotFound when the listing is empty or has no such entry.
func (r *TickerResolver) Resolve(ctx context.Context, symbol string) (quote.ExchangeInfo, error) {
	var result TickersResponse

	err := r.api.Get(ctx, tickersPath, map[string]string{
		"access_key": r.accessKey,
	}, &result)
	if err != nil {
		return quote.ExchangeInfo{}, fmt.Errorf("failed to fetch tickers for %s: %w", symbol, err)
	}

	if len(result.Data) == 0 {
		r.logger.Warn("no ticker data returned from the API", "symbol", symbol)
		return quote.ExchangeInfo{}, quote.ErrSymbolNotFound
	}

	for _, t := range result.Data {
		if t.Symbol != symbol {
			continue
		}
		var acronym string
		if t.StockExchange != nil {
			acronym = t.StockExchange.Acronym
		}
		return quote.NewExchangeInfo(acronym, t.Name), nil
	}

	r.logger.Warn("no stock found for symbol", "symbol", symbol, "listed", len(result.Data))
	return quote.ExchangeInfo{}, quote.ErrSymbolNotFound
}
