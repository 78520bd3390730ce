package cardcrawl

import "time"

// PagerKind selects which Navigator variant drives a source's pagination.
type PagerKind string

const (
	// PagerClick pages by clicking numbered page-selector elements.
	PagerClick PagerKind = "click"

	// PagerScript pages by invoking the site's paging function with a
	// zero-based page index.
	PagerScript PagerKind = "script"
)

// Source is the static description of one listing site: its pagination
// mechanics, selectors, canonical schema, and timing. A Source is
// constructed once at the start of a run and is read-only thereafter.
type Source struct {
	// Name identifies the source in logs and storage.
	Name string

	// StartURL is the listing page the crawl opens first.
	StartURL string

	// Pager selects the Navigator variant.
	Pager PagerKind

	// Columns is the canonical output schema, in column order. Every
	// emitted Record carries exactly these keys.
	Columns []string

	// Synonyms maps alternate raw labels onto canonical columns
	// (e.g. "Email ID" -> "E-mail"). Canonical columns match themselves
	// and need no entry.
	Synonyms map[string]string

	// RequiredAny lists columns of which at least one must be non-empty
	// for a card to be retained.
	RequiredAny []string

	// PhoneColumns lists columns holding phone-like values. They are kept
	// digits-plus-leading-plus on extraction and written with a text
	// format so leading zeros survive.
	PhoneColumns []string

	// KeyColumns lists the columns forming the dedup key. Empty means
	// full-row equality.
	KeyColumns []string

	// Facets lists facet identifiers (e.g. initial letters) crawled in
	// order. Empty means the source has a single unfaceted sequence.
	Facets []string

	// PageLinkSelector matches the numbered page-selector anchors of a
	// click-driven source. The target page number is read from the
	// element's data-page attribute.
	PageLinkSelector string

	// DefaultPageCount is the last-resort page count when discovery finds
	// no numbered page anchors.
	DefaultPageCount int

	// PageFunc and FacetFunc name the site's paging and facet-selection
	// functions for a script-driven source.
	PageFunc  string
	FacetFunc string

	// PageAnchorSelector matches pagination anchors whose hrefs embed
	// paging-function invocations, used when PageFunc is unavailable.
	PageAnchorSelector string

	// IndicatorSelector locates the pagination indicator text
	// ("<start> to <end> of <total> records") of an indicator-driven
	// source. Empty disables verification.
	IndicatorSelector string

	// CardSelector matches card containers, used as the fallback presence
	// check after a verification timeout.
	CardSelector string

	// SettleDelay is the fixed wait after triggering a transition.
	SettleDelay time.Duration

	// VerifyTimeout bounds indicator polling per page.
	VerifyTimeout time.Duration
}

// Validate returns an error if the source configuration is incomplete.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.StartURL == "" {
		return Errorf(EINVALID, "source start URL required")
	}
	if len(s.Columns) == 0 {
		return Errorf(EINVALID, "source schema requires at least one column")
	}
	switch s.Pager {
	case PagerClick:
		if s.PageLinkSelector == "" {
			return Errorf(EINVALID, "click source requires a page link selector")
		}
	case PagerScript:
		if s.PageFunc == "" {
			return Errorf(EINVALID, "script source requires a paging function name")
		}
	default:
		return Errorf(EINVALID, "unknown pager kind %q", s.Pager)
	}
	return nil
}

// Faceted reports whether the source partitions its records by facet.
func (s *Source) Faceted() bool {
	return len(s.Facets) > 0
}
