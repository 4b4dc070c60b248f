package main

import (
	"fmt"

	"github.com/jswierad/distill"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	results, err := deps.Scraper.ScrapeAll(deps.Ctx, c.URLs, c.OutputDir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", distill.ErrorMessage(err))
		return err
	}

	var ok, failed int
	for _, r := range results {
		if r.OK {
			ok++
			fmt.Fprintf(deps.Stdout, "ok      %s -> %s\n", r.InputPath, *r.OutputPath)
		} else {
			failed++
			fmt.Fprintf(deps.Stderr, "failed  %s: %s\n", r.InputPath, *r.Error)
		}
	}

	fmt.Fprintf(deps.Stdout, "scraped %d of %d URLs\n", ok, len(results))
	if ok == 0 {
		return distill.Errorf(distill.EUNAVAILABLE, "all %d URLs failed", failed)
	}
	return nil
}
