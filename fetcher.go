package sentimeter

import "context"

// Fetcher retrieves the HTML of a page without executing JavaScript.
type Fetcher interface {
	// Fetch returns the HTML body served at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	Close() error
}
