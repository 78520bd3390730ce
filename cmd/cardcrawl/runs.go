package main

import (
	"fmt"
	"time"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	archive, closeFn, err := deps.OpenArchive(c.DB)
	if err != nil {
		return err
	}
	defer closeFn()

	runs, err := archive.FindRuns(deps.Ctx, c.Source)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived runs. Use 'cardcrawl crawl --db' to archive one.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %-10s %s  %d records (%d pages, %d skipped) in %s\n",
			run.ID, run.Source, run.StartedAt.Format(time.RFC3339),
			run.Records, run.Pages, run.Skipped, run.Duration.Round(time.Millisecond))
	}
	return nil
}
