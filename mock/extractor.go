package mock

import (
	"context"

	"github.com/fwojciec/sentimeter"
)

var _ sentimeter.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sentimeter.Extractor.
type Extractor struct {
	InjectFn  func(ctx context.Context, pageURL string) error
	ExtractFn func(ctx context.Context, pageURL string) (*sentimeter.Extraction, error)
	CloseFn   func() error
}

func (e *Extractor) Inject(ctx context.Context, pageURL string) error {
	return e.InjectFn(ctx, pageURL)
}

func (e *Extractor) Extract(ctx context.Context, pageURL string) (*sentimeter.Extraction, error) {
	return e.ExtractFn(ctx, pageURL)
}

func (e *Extractor) Close() error {
	return e.CloseFn()
}
