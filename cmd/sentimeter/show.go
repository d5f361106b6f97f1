package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sentimeter"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	filter, err := sentimeter.ParseFilter(c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
		return err
	}

	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if sentimeter.ErrorCode(err) == sentimeter.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'sentimeter history' to see archived runs.\n", c.ID)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
		return err
	}

	store := sentimeter.NewResultStore()
	store.Replace(run.Result)
	store.SetFilter(filter)

	if c.Export {
		fmt.Fprintln(deps.Stdout, store.ExportText())
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s  %s\n", run.PageURL, run.CreatedAt.Local().Format(time.DateTime))
	renderReport(deps.Stdout, store)
	return nil
}
