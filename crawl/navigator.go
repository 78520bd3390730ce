package crawl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mwalter/cardcrawl"
)

// Ensure navigators implement the capability interfaces at compile time.
var (
	_ cardcrawl.Navigator      = (*ClickNavigator)(nil)
	_ cardcrawl.FacetNavigator = (*ScriptNavigator)(nil)
)

// ClickNavigator pages by clicking numbered page-selector elements. Each
// method is an ordered fallback chain: direct interaction, script-forced
// interaction on the same element, then a script-forced query-and-click by
// index. It fails only when every fallback fails.
type ClickNavigator struct {
	Session cardcrawl.Session

	// LinkSelector matches the page-selector anchors; the target page is
	// read from each element's data-page attribute.
	LinkSelector string
}

// Trigger attempts to move the view to the given 1-based page.
func (n *ClickNavigator) Trigger(ctx context.Context, page int) error {
	want := strconv.Itoa(page)

	els, err := n.Session.Elements(ctx, n.LinkSelector)
	if err == nil {
		for _, el := range els {
			dp, err := el.Attribute(ctx, "data-page")
			if err != nil || dp != want {
				continue
			}
			_ = el.ScrollIntoView(ctx)
			if err := el.Click(ctx); err == nil {
				return nil
			}
			// Click intercepted or the handle went stale; dispatch the
			// click from script on the same element.
			if err := el.ForceClick(ctx); err == nil {
				return nil
			}
			break
		}
	}

	// Element lookup failed entirely: query and click from script.
	js := fmt.Sprintf(
		`(() => { const e = document.querySelector("%s[data-page='%d']"); if (e) { e.click(); return true; } return false; })()`,
		n.LinkSelector, page,
	)
	ok, err := n.Session.Eval(ctx, js)
	if err != nil {
		return cardcrawl.Errorf(cardcrawl.EUNAVAILABLE, "page %d: scripted click failed: %v", page, err)
	}
	if !ok {
		return cardcrawl.Errorf(cardcrawl.ENOTFOUND, "page %d: no page selector element", page)
	}
	return nil
}

// ScriptNavigator pages by invoking the site's paging function. The page
// index passed to the function is ZERO-BASED: page 2 of the view is
// invocation index 1. When the function is not defined on the page, it
// falls back to anchors whose hrefs embed the same invocation.
type ScriptNavigator struct {
	Session cardcrawl.Session

	// PageFunc is the paging function name, invoked as
	// PageFunc('n', '<zeroBasedIndex>').
	PageFunc string

	// FacetFunc is the facet-selection function name, invoked as
	// FacetFunc('<facetID>'). Optional.
	FacetFunc string

	// AnchorSelector matches pagination anchors for the href fallback.
	AnchorSelector string
}

// Trigger attempts to move the view to the given 1-based page.
func (n *ScriptNavigator) Trigger(ctx context.Context, page int) error {
	zeroIdx := page - 1

	js := fmt.Sprintf(
		`(() => { if (typeof %s === 'function') { %s('n', '%d'); return true; } return false; })()`,
		n.PageFunc, n.PageFunc, zeroIdx,
	)
	ok, err := n.Session.Eval(ctx, js)
	if err == nil && ok {
		return nil
	}

	// Paging function unavailable: find an anchor embedding the same
	// zero-based invocation and force-click it.
	els, err := n.Session.Elements(ctx, n.AnchorSelector)
	if err != nil {
		return cardcrawl.Errorf(cardcrawl.EUNAVAILABLE, "page %d: pagination anchors unavailable: %v", page, err)
	}
	single := fmt.Sprintf("%s('n', '%d')", n.PageFunc, zeroIdx)
	double := fmt.Sprintf("%s(%q, %q)", n.PageFunc, "n", strconv.Itoa(zeroIdx))
	for _, el := range els {
		href, err := el.Attribute(ctx, "href")
		if err != nil {
			continue
		}
		if !strings.Contains(href, single) && !strings.Contains(href, double) {
			continue
		}
		_ = el.ScrollIntoView(ctx)
		if err := el.ForceClick(ctx); err == nil {
			return nil
		}
	}
	return cardcrawl.Errorf(cardcrawl.ENOTFOUND, "page %d: no pagination control found", page)
}

// SelectFacet switches the view to the given facet, trying the facet
// function first and falling back to a forced click on the matching
// element.
func (n *ScriptNavigator) SelectFacet(ctx context.Context, facetID string) error {
	if n.FacetFunc != "" {
		js := fmt.Sprintf(
			`(() => { if (typeof %s === 'function') { %s('%s'); return true; } return false; })()`,
			n.FacetFunc, n.FacetFunc, facetID,
		)
		ok, err := n.Session.Eval(ctx, js)
		if err == nil && ok {
			return nil
		}
	}

	els, err := n.Session.Elements(ctx, "#"+facetID)
	if err != nil || len(els) == 0 {
		return cardcrawl.Errorf(cardcrawl.ENOTFOUND, "facet %s: no selection control found", facetID)
	}
	_ = els[0].ScrollIntoView(ctx)
	if err := els[0].ForceClick(ctx); err != nil {
		return cardcrawl.Errorf(cardcrawl.EUNAVAILABLE, "facet %s: click failed: %v", facetID, err)
	}
	return nil
}
