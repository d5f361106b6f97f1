package main

import (
	"fmt"

	"github.com/fwojciec/sentimeter"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return sentimeter.Errorf(sentimeter.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if sentimeter.ErrorCode(err) == sentimeter.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'sentimeter history' to see archived runs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", sentimeter.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
