package main

import (
	"context"

	"github.com/fwojciec/sentimeter"
	"github.com/fwojciec/sentimeter/goquery"
)

// ProbeExtractor decides how comments are read from pageURL.
// It fetches the page over HTTP; if the static HTML already contains
// comments matching selector, the page is read without a browser.
// Otherwise, or when the fetch fails, the browser extractor is started.
func ProbeExtractor(
	ctx context.Context,
	pageURL string,
	fetcher sentimeter.Fetcher,
	selector string,
	newBrowser func() (sentimeter.Extractor, error),
) (sentimeter.Extractor, error) {
	html, err := fetcher.Fetch(ctx, pageURL)
	if err == nil && goquery.HasComments(html, selector) {
		return goquery.NewExtractor(fetcher, goquery.WithSelector(selector)), nil
	}

	fetcher.Close()
	return newBrowser()
}
