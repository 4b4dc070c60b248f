package main

import (
	"fmt"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/fs"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	artifacts, err := fs.LoadArtifacts(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", distill.ErrorMessage(err))
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, artifacts, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", distill.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
