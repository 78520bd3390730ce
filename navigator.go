package cardcrawl

import "context"

// Navigator performs one pagination transition against the live session.
// A nil error means the attempt was issued, not that arrival is confirmed;
// verification is the driver's concern.
type Navigator interface {
	// Trigger attempts to move the view to the given 1-based page.
	// Returns an error only if every fallback failed to issue the attempt.
	Trigger(ctx context.Context, page int) error
}

// FacetNavigator is a Navigator that additionally supports an orthogonal
// facet dimension (e.g. an initial-letter filter) restricting which records
// the pagination sequence covers.
type FacetNavigator interface {
	Navigator

	// SelectFacet switches the view to the given facet, resetting
	// pagination to its first page.
	SelectFacet(ctx context.Context, facetID string) error
}
