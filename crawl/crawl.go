// Package crawl provides the pagination-driven crawl orchestration.
// It discovers a source's page count, drives the Navigator page by page,
// verifies arrival where the source allows it, and extracts and normalizes
// the cards of every page.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalter/cardcrawl"
)

// Crawler orchestrates the crawl of one listing source. One Crawler is the
// sole mutator of its Session for the duration of a run: pages are visited
// strictly in increasing index order, one at a time.
type Crawler struct {
	Source    *cardcrawl.Source
	Session   cardcrawl.Session
	Navigator cardcrawl.Navigator
	Extractor cardcrawl.CardExtractor

	// States reads the pagination indicator of an indicator-driven source.
	// Nil disables content verification (click-driven sources).
	States cardcrawl.StateReader

	// Pacer, if set, bounds the rate of pagination transitions.
	Pacer *Pacer

	// FallbackWait bounds the wait for card containers after a
	// verification timeout. Defaults to 3s.
	FallbackWait time.Duration

	Logger *slog.Logger
}

// Result holds the outcome of a crawl: the normalized records in page
// order, before deduplication.
type Result struct {
	Records []cardcrawl.Record
	Pages   int // pages successfully extracted
	Skipped int // pages skipped after trigger failure
}

// defaultPerPage is assumed when an indicator source exposes no parseable
// indicator for a facet.
const defaultPerPage = 25

// statePollInterval is the indicator polling cadence during verification.
const statePollInterval = 250 * time.Millisecond

// Run crawls the whole source. A navigation or verification failure on one
// page (or one facet) is logged and skipped; the crawl never retries and
// never aborts for soft failures. Only failure to load the start URL is
// fatal.
func (c *Crawler) Run(ctx context.Context) (*Result, error) {
	if err := c.Source.Validate(); err != nil {
		return nil, err
	}

	if err := c.Session.Navigate(ctx, c.Source.StartURL); err != nil {
		return nil, cardcrawl.Errorf(cardcrawl.EUNAVAILABLE, "loading %s: %v", c.Source.StartURL, err)
	}
	if err := c.wait(ctx, c.Source.SettleDelay); err != nil {
		return nil, err
	}

	result := &Result{}

	if !c.Source.Faceted() {
		c.crawlSequence(ctx, "", result)
		return result, ctx.Err()
	}

	facets, ok := c.Navigator.(cardcrawl.FacetNavigator)
	if !ok {
		return nil, cardcrawl.Errorf(cardcrawl.EINVALID, "source %s is faceted but navigator cannot select facets", c.Source.Name)
	}

	for _, facetID := range c.Source.Facets {
		if ctx.Err() != nil {
			break
		}
		if err := facets.SelectFacet(ctx, facetID); err != nil {
			c.logger().Warn("facet selection failed, skipping facet",
				"source", c.Source.Name,
				"facet", facetID,
				"err", err,
			)
			continue
		}
		if err := c.wait(ctx, c.Source.SettleDelay); err != nil {
			break
		}
		c.crawlSequence(ctx, facetID, result)
	}

	return result, ctx.Err()
}

// crawlSequence crawls one contiguous pagination sequence (the whole source,
// or one facet of it), appending to the accumulated result.
func (c *Crawler) crawlSequence(ctx context.Context, facetID string, result *Result) {
	state, perPage, totalPages := c.discover(ctx)

	c.logger().Info("pagination discovered",
		"source", c.Source.Name,
		"facet", facetID,
		"pages", totalPages,
		"perPage", perPage,
		"total", state.Total,
	)

	for page := 1; page <= totalPages; page++ {
		if ctx.Err() != nil {
			return
		}

		// Page 1 is the already-rendered view; no trigger.
		if page > 1 {
			if err := c.Pacer.Wait(ctx); err != nil {
				return
			}
			if err := c.Navigator.Trigger(ctx, page); err != nil {
				result.Skipped++
				c.logger().Warn("could not trigger page, skipping",
					"source", c.Source.Name,
					"facet", facetID,
					"page", page,
					"err", err,
				)
				continue
			}
			if err := c.wait(ctx, c.Source.SettleDelay); err != nil {
				return
			}
		}

		c.verify(ctx, facetID, page, state, perPage)

		count, err := c.extract(ctx, page, result)
		if err != nil {
			result.Skipped++
			c.logger().Warn("could not extract page, skipping",
				"source", c.Source.Name,
				"facet", facetID,
				"page", page,
				"err", err,
			)
			continue
		}

		result.Pages++
		c.logger().Info("page extracted",
			"source", c.Source.Name,
			"facet", facetID,
			"page", page,
			"cards", count,
		)
	}
}

// discover determines the pagination extent of the current view.
func (c *Crawler) discover(ctx context.Context) (state cardcrawl.PaginationState, perPage, totalPages int) {
	if c.States == nil {
		// Click-driven: scan numbered page anchors, last resort default.
		totalPages = DiscoverMaxPage(ctx, c.Session, c.Source.PageLinkSelector, c.Source.DefaultPageCount)
		return cardcrawl.PaginationState{}, 0, totalPages
	}

	state, err := c.States.State(ctx)
	if err != nil {
		// No indicator rendered: treat as a single page of unknown size.
		return cardcrawl.PaginationState{}, defaultPerPage, 1
	}
	perPage = state.PerPage()
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return state, perPage, state.TotalPages(perPage)
}

// verify waits for evidence that the expected page is rendered. Click-driven
// sources get no verification beyond the settle delay: whatever is rendered
// is accepted (a documented best-effort gap). Indicator-driven sources poll
// for the expected (start, total) pair and, on timeout, fall back to a short
// wait for card containers before proceeding regardless.
func (c *Crawler) verify(ctx context.Context, facetID string, page int, state cardcrawl.PaginationState, perPage int) {
	if c.States == nil {
		c.logger().Debug("page accepted without verification",
			"source", c.Source.Name,
			"page", page,
		)
		return
	}

	expectedStart, _ := state.ExpectedRange(page, perPage)
	if c.waitForState(ctx, expectedStart, state.Total) {
		return
	}

	c.logger().Warn("indicator never showed expected range, proceeding with rendered content",
		"source", c.Source.Name,
		"facet", facetID,
		"page", page,
		"expectedStart", expectedStart,
	)
	c.waitForCards(ctx)
}

// waitForState polls the pagination indicator until it reports the expected
// start and total, or the verification timeout elapses.
func (c *Crawler) waitForState(ctx context.Context, expectedStart, expectedTotal int) bool {
	deadline := time.Now().Add(c.Source.VerifyTimeout)
	for {
		st, err := c.States.State(ctx)
		if err == nil && st.Total == expectedTotal && st.Start == expectedStart {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		if err := c.wait(ctx, statePollInterval); err != nil {
			return false
		}
	}
}

// waitForCards waits for at least one card container to be present, bounded
// by FallbackWait.
func (c *Crawler) waitForCards(ctx context.Context) {
	fallback := c.FallbackWait
	if fallback <= 0 {
		fallback = 3 * time.Second
	}
	deadline := time.Now().Add(fallback)
	for {
		els, err := c.Session.Elements(ctx, c.Source.CardSelector)
		if err == nil && len(els) > 0 {
			return
		}
		if time.Now().After(deadline) {
			return
		}
		if err := c.wait(ctx, statePollInterval); err != nil {
			return
		}
	}
}

// extract snapshots the current view, extracts its cards, and appends the
// normalized records that satisfy the source's must-have policy.
func (c *Crawler) extract(ctx context.Context, page int, result *Result) (int, error) {
	html, err := c.Session.HTML(ctx)
	if err != nil {
		return 0, err
	}
	snapshot := cardcrawl.PageSnapshot{Page: page, HTML: html}

	raws, err := c.Extractor.Extract(snapshot.HTML)
	if err != nil {
		return 0, err
	}

	kept := 0
	for _, raw := range raws {
		rec := cardcrawl.Normalize(raw, c.Source.Columns, c.Source.Synonyms)
		if !rec.HasAny(c.Source.RequiredAny) {
			continue
		}
		result.Records = append(result.Records, rec)
		kept++
	}
	return kept, nil
}

// wait sleeps for d unless the context is canceled first.
func (c *Crawler) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
