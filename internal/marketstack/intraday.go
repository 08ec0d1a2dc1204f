package marketstack

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stockquote/internal/fetcher"
	"stockquote/internal/quote"
)

// IntradayResponse represents the marketstack response for intraday quotes
type IntradayResponse struct {
	Data []quote.Record `json:"data"`
}

// QuoteFetcher retrieves the most recent intraday quote of a symbol.
type QuoteFetcher struct {
	api       fetcher.Getter
	accessKey string
	logger    *slog.Logger
	now       func() time.Time
}

// NewQuoteFetcher creates a quote fetcher using api for requests.
func NewQuoteFetcher(api fetcher.Getter, accessKey string, opts ...Option) *QuoteFetcher {
	s := newSettings(opts)
	return &QuoteFetcher{
		api:       api,
		accessKey: accessKey,
		logger:    s.logger,
		now:       s.now,
	}
}

// FetchLatest asks for one 15-minute record between yesterday and today and
// returns it. It returns quote.ErrNoData when the window holds no record.
func (f *QuoteFetcher) FetchLatest(ctx context.Context, symbol string) (quote.Record, error) {
	var result IntradayResponse

	err := f.api.Get(ctx, intradayPath, f.params(symbol), &result)
	if err != nil {
		return quote.Record{}, fmt.Errorf("failed to fetch intraday quote for %s: %w", symbol, err)
	}

	if len(result.Data) == 0 {
		f.logger.Warn("no quote data returned from the API", "symbol", symbol)
		return quote.Record{}, quote.ErrNoData
	}

	return result.Data[0], nil
}

func (f *QuoteFetcher) params(symbol string) map[string]string {
	today := f.now()
	return map[string]string{
		"access_key": f.accessKey,
		"symbols":    symbol,
		"interval":   quoteInterval,
		"date_from":  today.AddDate(0, 0, -1).Format(dateLayout),
		"date_to":    today.Format(dateLayout),
		"limit":      "1",
	}
}
