package mock

import (
	"context"

	"github.com/fwojciec/sentimeter"
)

var _ sentimeter.RunWriter = (*RunWriter)(nil)

// RunWriter is a mock implementation of sentimeter.RunWriter.
type RunWriter struct {
	CreateRunFn func(ctx context.Context, run *sentimeter.Run) error
}

func (w *RunWriter) CreateRun(ctx context.Context, run *sentimeter.Run) error {
	return w.CreateRunFn(ctx, run)
}
