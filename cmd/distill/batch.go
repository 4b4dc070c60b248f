package main

import (
	"fmt"
	"path/filepath"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/batch"
	"github.com/jswierad/distill/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	opts := batch.Options{
		InputDir:  c.InputDir,
		OutputDir: c.OutputDir,
		Format:    distill.Format(c.Format),
		Overwrite: c.Overwrite,
		Limit:     c.Limit,
	}

	var progress batch.ProgressFunc
	if !c.Quiet {
		progress = func(e batch.ProgressEvent) {
			switch e.Type {
			case batch.ProgressStarted:
				fmt.Fprintf(deps.Stderr, "processing %d files\n", e.Total)
			case batch.ProgressCompleted:
				fmt.Fprintf(deps.Stderr, "[%d/%d] ok      %s\n", e.Completed, e.Total, e.Path)
			case batch.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "[%d/%d] failed  %s: %s\n", e.Completed, e.Total, e.Path, distill.ErrorMessage(e.Error))
			}
		}
	}

	manifest, err := deps.Runner.Run(deps.Ctx, opts, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", distill.ErrorMessage(err))
		return err
	}

	run, err := deps.Runs.CreateRun(deps.Ctx, manifest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: could not record run: %s\n", distill.ErrorMessage(err))
	} else {
		fmt.Fprintf(deps.Stdout, "run %s\n", run.ID)
	}

	fmt.Fprintf(deps.Stdout, "total=%d ok=%d failed=%d  manifest: %s\n",
		manifest.Total, manifest.OK, manifest.Failed,
		filepath.Join(manifest.OutputDir, fs.ManifestName))
	return nil
}
