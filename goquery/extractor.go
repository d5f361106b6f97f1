package goquery

import (
	"context"
	"sync"

	"github.com/fwojciec/sentimeter"
)

// Ensure Extractor implements sentimeter.Extractor at compile time.
var _ sentimeter.Extractor = (*Extractor)(nil)

// Extractor reads comments from HTML retrieved by a Fetcher. It does not run
// JavaScript, so it suits saved pages and server-rendered sites.
type Extractor struct {
	fetcher  sentimeter.Fetcher
	selector string

	mu    sync.Mutex
	pages map[string]string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithSelector sets the CSS selector matching comment bodies.
// Defaults to DefaultCommentSelector.
func WithSelector(selector string) ExtractorOption {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// NewExtractor creates an Extractor that reads pages through fetcher.
func NewExtractor(fetcher sentimeter.Fetcher, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		fetcher:  fetcher,
		selector: DefaultCommentSelector,
		pages:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Inject fetches the page so that Extract can read it.
func (e *Extractor) Inject(ctx context.Context, pageURL string) error {
	html, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.pages[pageURL] = html
	e.mu.Unlock()
	return nil
}

// Extract returns the comments of the page fetched by Inject. If Inject was
// not called or failed, the page is fetched now.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*sentimeter.Extraction, error) {
	e.mu.Lock()
	html, ok := e.pages[pageURL]
	delete(e.pages, pageURL)
	e.mu.Unlock()

	if !ok {
		var err error
		if html, err = e.fetcher.Fetch(ctx, pageURL); err != nil {
			return nil, err
		}
	}

	comments, err := ExtractComments(html, e.selector)
	if err != nil {
		return sentimeter.FailedExtraction(sentimeter.ErrorMessage(err)), nil
	}
	return sentimeter.NewExtraction(comments), nil
}

// Close closes the underlying fetcher.
func (e *Extractor) Close() error {
	return e.fetcher.Close()
}
