package main

import (
	"fmt"

	"github.com/fwojciec/sentimeter"
	"github.com/fwojciec/sentimeter/fs"
	"github.com/fwojciec/sentimeter/pipeline"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	filter, err := sentimeter.ParseFilter(c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
		return err
	}

	matcher, err := sentimeter.NewContextMatcher(c.Pattern)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
		return err
	}

	store := sentimeter.NewResultStore()
	store.SetFilter(filter)

	opts := []pipeline.Option{
		pipeline.WithContextMatcher(matcher),
		pipeline.WithSettleDelay(c.Settle),
		pipeline.WithBusyIndicator(&progress{w: deps.Stderr}),
	}
	if deps.Logger != nil {
		opts = append(opts, pipeline.WithLogger(deps.Logger))
	}
	if deps.Runs != nil && !c.NoHistory {
		opts = append(opts, pipeline.WithRunWriter(deps.Runs))
	}

	p := pipeline.New(deps.Extractor, deps.Classifier, store, opts...)
	if _, err := p.Run(deps.Ctx, c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
		return err
	}

	if c.Output != "" {
		if err := fs.WriteExport(c.Output, store); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Exported %d comments to %s\n", store.Statistics().TotalCount, c.Output)
	}

	if c.Export {
		fmt.Fprintln(deps.Stdout, store.ExportText())
		return nil
	}

	renderReport(deps.Stdout, store)
	return nil
}
