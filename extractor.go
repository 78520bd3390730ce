package cardcrawl

// CardExtractor parses one page's rendered content into raw cards using
// structural anchors (icon markers, label/value pairs) rather than fixed
// positions. Every per-field lookup is best-effort: a missing element
// yields an empty string, never an error.
type CardExtractor interface {
	// Extract returns one RawCard per card element found in the content.
	// Content with no cards yields an empty slice.
	Extract(html string) ([]RawCard, error)
}
