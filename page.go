package cardcrawl

import "context"

// PageSnapshot is the rendered content of one page at one pagination index.
// It is produced once per successful navigation and never mutated.
type PageSnapshot struct {
	// Page is the 1-based pagination index the snapshot was taken at.
	Page int

	// HTML is the rendered content.
	HTML string
}

// PaginationState is derived from a page's pagination indicator text, e.g.
// "1 to 25 of 136 records".
type PaginationState struct {
	Start int // first visible record, 1-based
	End   int // last visible record
	Total int // total records reported
}

// PerPage returns the page size implied by the visible range.
func (p PaginationState) PerPage() int {
	return p.End - p.Start + 1
}

// TotalPages returns ceil(Total / perPage) for the given page size,
// never less than 1.
func (p PaginationState) TotalPages(perPage int) int {
	if perPage <= 0 {
		return 1
	}
	n := (p.Total + perPage - 1) / perPage
	if n < 1 {
		return 1
	}
	return n
}

// ExpectedRange returns the record range a given 1-based page should show.
// The final page may be short: for 136 records at 25 per page, page 6
// covers 126..136.
func (p PaginationState) ExpectedRange(page, perPage int) (start, end int) {
	start = (page-1)*perPage + 1
	end = page * perPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// StateReader reads the current pagination state from the live view.
// Implementations locate and parse the source's pagination indicator.
type StateReader interface {
	// State returns the currently displayed pagination state.
	// Returns ENOTFOUND if no indicator is present or it cannot be parsed.
	State(ctx context.Context) (PaginationState, error)
}
