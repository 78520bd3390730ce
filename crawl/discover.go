package crawl

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/mwalter/cardcrawl"
)

// indicatorRe matches pagination indicator text of the form
// "<start> to <end> of <total> records".
var indicatorRe = regexp.MustCompile(`(?i)(\d+)\s*to\s*(\d+)\s*of\s*(\d+)`)

// ParseIndicator parses pagination indicator text like "1 to 25 of 136
// records". Non-breaking spaces are tolerated. Returns ENOTFOUND if the
// text carries no parseable range.
func ParseIndicator(text string) (cardcrawl.PaginationState, error) {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	m := indicatorRe.FindStringSubmatch(text)
	if m == nil {
		return cardcrawl.PaginationState{}, cardcrawl.Errorf(cardcrawl.ENOTFOUND, "no pagination range in %q", strings.TrimSpace(text))
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	total, _ := strconv.Atoi(m[3])
	return cardcrawl.PaginationState{Start: start, End: end, Total: total}, nil
}

// DiscoverMaxPage scans the page-selector anchors of a click-driven source
// and returns the highest numeric page marker found. Anchors without a
// numeric data-page attribute contribute their text if that is numeric.
// When nothing numeric is found, the configured fallback is returned.
func DiscoverMaxPage(ctx context.Context, session cardcrawl.Session, selector string, fallback int) int {
	max := 0

	els, err := session.Elements(ctx, selector)
	if err == nil {
		for _, el := range els {
			n, ok := pageNumber(ctx, el)
			if ok && n > max {
				max = n
			}
		}
	}

	if max == 0 {
		return fallback
	}
	return max
}

// pageNumber reads an anchor's page marker from its data-page attribute,
// falling back to its text.
func pageNumber(ctx context.Context, el cardcrawl.Element) (int, bool) {
	if dp, err := el.Attribute(ctx, "data-page"); err == nil && dp != "" {
		if n, err := strconv.Atoi(dp); err == nil {
			return n, true
		}
	}
	if txt, err := el.Text(ctx); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(txt)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Ensure IndicatorReader implements cardcrawl.StateReader at compile time.
var _ cardcrawl.StateReader = (*IndicatorReader)(nil)

// IndicatorReader reads PaginationState from the live view's pagination
// indicator element.
type IndicatorReader struct {
	Session  cardcrawl.Session
	Selector string
}

// State locates the indicator element and parses its text.
func (r *IndicatorReader) State(ctx context.Context) (cardcrawl.PaginationState, error) {
	els, err := r.Session.Elements(ctx, r.Selector)
	if err != nil {
		return cardcrawl.PaginationState{}, err
	}
	if len(els) == 0 {
		return cardcrawl.PaginationState{}, cardcrawl.Errorf(cardcrawl.ENOTFOUND, "no pagination indicator matching %q", r.Selector)
	}
	text, err := els[0].Text(ctx)
	if err != nil {
		return cardcrawl.PaginationState{}, err
	}
	return ParseIndicator(text)
}
