package mock

import (
	"context"

	"github.com/mwalter/cardcrawl"
)

var _ cardcrawl.FacetNavigator = (*Navigator)(nil)

// Navigator is a mock implementation of cardcrawl.Navigator and
// cardcrawl.FacetNavigator.
type Navigator struct {
	TriggerFn     func(ctx context.Context, page int) error
	SelectFacetFn func(ctx context.Context, facetID string) error
}

func (n *Navigator) Trigger(ctx context.Context, page int) error {
	return n.TriggerFn(ctx, page)
}

func (n *Navigator) SelectFacet(ctx context.Context, facetID string) error {
	return n.SelectFacetFn(ctx, facetID)
}
