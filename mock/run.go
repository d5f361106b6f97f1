package mock

import (
	"context"

	"github.com/fwojciec/sentimeter"
)

var _ sentimeter.RunService = (*RunService)(nil)

// RunService is a mock implementation of sentimeter.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *sentimeter.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*sentimeter.Run, error)
	FindRunsFn    func(ctx context.Context, filter sentimeter.RunFilter) ([]*sentimeter.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *sentimeter.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*sentimeter.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter sentimeter.RunFilter) ([]*sentimeter.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
