package mock

import (
	"context"

	"github.com/mwalter/cardcrawl"
)

var _ cardcrawl.StateReader = (*StateReader)(nil)

// StateReader is a mock implementation of cardcrawl.StateReader.
type StateReader struct {
	StateFn func(ctx context.Context) (cardcrawl.PaginationState, error)
}

func (r *StateReader) State(ctx context.Context) (cardcrawl.PaginationState, error) {
	return r.StateFn(ctx)
}
