package main

import (
	"fmt"

	"github.com/jswierad/distill"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.showItems(deps)
	}

	filter := distill.RunFilter{Limit: c.Limit, Offset: c.Offset}
	if c.InputDir != "" {
		filter.InputDir = &c.InputDir
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", distill.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'distill batch' to create one.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, distill.FormatRuns(runs))
	return nil
}

// showItems prints the per-file results of a single run.
func (c *RunsCmd) showItems(deps *Dependencies) error {
	items, err := deps.Runs.FindRunItems(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", distill.ErrorMessage(err))
		return err
	}

	for _, item := range items {
		if item.OK {
			fmt.Fprintf(deps.Stdout, "ok      %s -> %s (%d chars)\n", item.InputPath, *item.OutputPath, item.ExtractedChars)
		} else {
			fmt.Fprintf(deps.Stdout, "failed  %s: %s\n", item.InputPath, *item.Error)
		}
	}
	return nil
}
