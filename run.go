package sentimeter

import (
	"context"
	"time"
)

// Run is the archived record of a completed analysis run.
type Run struct {
	ID          string          `json:"id"`
	PageURL     string          `json:"pageUrl"`
	Result      *AnalysisResult `json:"result"`
	ContentHash string          `json:"contentHash"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.PageURL == "" {
		return Errorf(EINVALID, "run page URL required")
	}
	if r.Result == nil {
		return Errorf(EINVALID, "run result required")
	}
	return nil
}

// RunWriter archives completed runs.
type RunWriter interface {
	CreateRun(ctx context.Context, run *Run) error
}

// RunService represents a service for managing archived runs.
type RunService interface {
	// CreateRun archives a run. ID, ContentHash and CreatedAt are assigned.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run and its items by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	// Items are not loaded; Result carries statistics only.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and its items.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID      *string `json:"id"`
	PageURL *string `json:"pageUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
