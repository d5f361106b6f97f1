package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sentimeter"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := sentimeter.RunFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.PageURL = &c.URL
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'sentimeter analyze' to create one.")
		return nil
	}

	for _, r := range runs {
		var stats sentimeter.BatchStatistics
		if r.Result != nil {
			stats = r.Result.Statistics
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  +%.1f%% =%.1f%% -%.1f%%  %d  %s\n",
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			stats.PositivePercent, stats.NeutralPercent, stats.NegativePercent,
			stats.TotalCount,
			r.PageURL,
		)
	}

	return nil
}
