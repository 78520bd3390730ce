package cardcrawl

import "context"

// TableWriter persists a final record sequence as a tabular artifact.
type TableWriter interface {
	// WriteTable writes the records under the given column order.
	// Columns listed in textColumns are serialized with an enforced text
	// format so leading zeros and plus signs survive.
	//
	// Returns an ELOCKED error, without touching any existing artifact,
	// when the destination is held by another process. No partial
	// artifact is ever produced.
	WriteTable(ctx context.Context, columns, textColumns []string, records []Record) error
}
