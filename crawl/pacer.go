package crawl

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer bounds the rate of pagination transitions using a token bucket
// with a burst of 1, so triggers are evenly spaced. A nil Pacer never
// waits.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer allowing the given number of transitions per
// second.
func NewPacer(perSecond float64) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// Wait blocks until the next transition is allowed. Returns an error if
// the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
