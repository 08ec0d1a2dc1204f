package fetcher

import "context"

// Getter issues a GET against the market-data API and decodes the JSON body
// into out. Both the HTTP Client and the Retrier implement it, so the
// retrying decorator can be dropped in wherever a plain transport is accepted.
type Getter interface {
	// Get requests path (relative to the configured base URL) with the given
	// query parameters. A non-2xx response is returned as a *FetchError
	// carrying the status code; out is left untouched in that case.
	Get(ctx context.Context, path string, params map[string]string, out any) error
}
