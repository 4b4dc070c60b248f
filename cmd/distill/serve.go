package main

import (
	"fmt"

	"github.com/jswierad/distill"
	distillhttp "github.com/jswierad/distill/http"
	"github.com/rs/zerolog"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := zerolog.New(deps.Stderr).With().Timestamp().Logger()

	srv := &distillhttp.Server{
		Addr:      c.Addr,
		Logger:    logger,
		Scraper:   deps.Scraper,
		Runner:    deps.Runner,
		OutputDir: c.OutputDir,
	}

	if err := srv.ListenAndServe(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", distill.ErrorMessage(err))
		return err
	}
	return nil
}
