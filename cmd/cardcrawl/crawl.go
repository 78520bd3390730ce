package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mwalter/cardcrawl"
	"github.com/mwalter/cardcrawl/crawl"
	cardrod "github.com/mwalter/cardcrawl/rod"
	"github.com/mwalter/cardcrawl/xlsx"
	"golang.org/x/sync/errgroup"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	var entries []*SourceEntry
	switch {
	case c.All && c.Source != "":
		return cardcrawl.Errorf(cardcrawl.EINVALID, "pass a source name or --all, not both")
	case c.All:
		if c.Out != "" {
			return cardcrawl.Errorf(cardcrawl.EINVALID, "--out cannot be combined with --all; each source writes its default artifact")
		}
		entries = deps.Catalog
	case c.Source == "":
		return cardcrawl.Errorf(cardcrawl.EINVALID, "source required. Run 'cardcrawl sources' to list sources, or pass --all")
	default:
		entry, err := findSource(deps.Catalog, c.Source)
		if err != nil {
			return err
		}
		entries = []*SourceEntry{entry}
	}

	var archive cardcrawl.RunService
	if c.DB != "" {
		svc, closeFn, err := deps.OpenArchive(c.DB)
		if err != nil {
			return err
		}
		defer closeFn()
		archive = svc
	}

	// One browser session per source; sessions are never shared.
	g, ctx := errgroup.WithContext(deps.Ctx)
	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			return c.crawlSource(ctx, deps, entry, archive)
		})
	}
	return g.Wait()
}

// crawlSource crawls one source end to end: session, pagination, dedup,
// artifact, optional archive.
func (c *CrawlCmd) crawlSource(ctx context.Context, deps *Dependencies, entry *SourceEntry, archive cardcrawl.RunService) error {
	src := entry.Source

	session, err := deps.NewSession(c.Headless)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer session.Close()

	logged := cardrod.NewLoggingSession(session, deps.Logger)

	var navigator cardcrawl.Navigator
	switch src.Pager {
	case cardcrawl.PagerClick:
		navigator = &crawl.ClickNavigator{
			Session:      logged,
			LinkSelector: src.PageLinkSelector,
		}
	case cardcrawl.PagerScript:
		navigator = &crawl.ScriptNavigator{
			Session:        logged,
			PageFunc:       src.PageFunc,
			FacetFunc:      src.FacetFunc,
			AnchorSelector: src.PageAnchorSelector,
		}
	}

	var states cardcrawl.StateReader
	if src.IndicatorSelector != "" {
		states = &crawl.IndicatorReader{Session: logged, Selector: src.IndicatorSelector}
	}

	var pacer *crawl.Pacer
	if c.Rate > 0 {
		pacer = crawl.NewPacer(c.Rate)
	}

	crawler := &crawl.Crawler{
		Source:    src,
		Session:   logged,
		Navigator: navigator,
		Extractor: entry.Extractor,
		States:    states,
		Pacer:     pacer,
		Logger:    deps.Logger,
	}

	started := time.Now()
	result, err := crawler.Run(ctx)
	if err != nil {
		return fmt.Errorf("crawling %s: %w", src.Name, err)
	}

	records := cardcrawl.Dedupe(result.Records, cardcrawl.KeyFor(src))

	out := c.Out
	if out == "" {
		out = entry.DefaultOut
	}
	if err := xlsx.NewWriter(out).WriteTable(ctx, src.Columns, src.PhoneColumns, records); err != nil {
		if cardcrawl.ErrorCode(err) == cardcrawl.ELOCKED {
			fmt.Fprintf(deps.Stderr, "Hint: close %s in other programs and retry\n", out)
		}
		return err
	}

	if archive != nil {
		c.archiveRun(deps, archive, src, started, result, records)
	}

	fmt.Fprintf(deps.Stdout, "%s: %d records (%d pages, %d skipped) -> %s\n",
		src.Name, len(records), result.Pages, result.Skipped, out)
	return nil
}

// archiveRun persists the run best-effort: failure is reported but never
// discards the written artifact.
func (c *CrawlCmd) archiveRun(deps *Dependencies, archive cardcrawl.RunService, src *cardcrawl.Source, started time.Time, result *crawl.Result, records []cardcrawl.Record) {
	run := &cardcrawl.Run{
		Source:    src.Name,
		StartedAt: started.UTC(),
		Duration:  time.Since(started),
		Pages:     result.Pages,
		Skipped:   result.Skipped,
		Records:   len(records),
	}
	ctx := deps.Ctx
	if err := archive.CreateRun(ctx, run); err != nil {
		deps.Logger.Warn("could not archive run", "source", src.Name, "err", err)
		return
	}
	if err := archive.ArchiveRecords(ctx, run.ID, src.Columns, records); err != nil {
		deps.Logger.Warn("could not archive records", "source", src.Name, "run", run.ID, "err", err)
	}
}
