package mock

import (
	"context"

	"github.com/fwojciec/sentimeter"
)

var _ sentimeter.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of sentimeter.Classifier.
type Classifier struct {
	HealthFn        func(ctx context.Context) error
	ClassifyBatchFn func(ctx context.Context, items []string) (*sentimeter.AnalysisResult, error)
}

func (c *Classifier) Health(ctx context.Context) error {
	return c.HealthFn(ctx)
}

func (c *Classifier) ClassifyBatch(ctx context.Context, items []string) (*sentimeter.AnalysisResult, error) {
	return c.ClassifyBatchFn(ctx, items)
}
