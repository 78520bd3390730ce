package mock

import "github.com/mwalter/cardcrawl"

var _ cardcrawl.CardExtractor = (*CardExtractor)(nil)

// CardExtractor is a mock implementation of cardcrawl.CardExtractor.
type CardExtractor struct {
	ExtractFn func(html string) ([]cardcrawl.RawCard, error)
}

func (e *CardExtractor) Extract(html string) ([]cardcrawl.RawCard, error) {
	return e.ExtractFn(html)
}
