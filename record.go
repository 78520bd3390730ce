package cardcrawl

import "strings"

// RawCard is the field -> value mapping scraped from one card before
// normalization. Labels are free text; absent fields are simply missing
// keys, never an error condition.
type RawCard map[string]string

// Record is a normalized row. Every canonical column of its source is
// present; fields the card did not provide hold "".
type Record map[string]string

// NewRecord returns a Record with every column present and empty.
func NewRecord(columns []string) Record {
	r := make(Record, len(columns))
	for _, c := range columns {
		r[c] = ""
	}
	return r
}

// Values returns the record's values in column order.
func (r Record) Values(columns []string) []string {
	vals := make([]string, len(columns))
	for i, c := range columns {
		vals[i] = r[c]
	}
	return vals
}

// HasAny reports whether at least one of the named columns is non-empty.
func (r Record) HasAny(columns []string) bool {
	for _, c := range columns {
		if r[c] != "" {
			return true
		}
	}
	return len(columns) == 0
}

// Normalize maps a source-specific raw card onto the canonical column set.
// Resolution order per raw label: canonical column exact match, synonym
// exact match, then a case/whitespace/trailing-colon-insensitive pass over
// both. Unresolved labels are dropped; there is no catch-all column.
// Normalizing an already-canonical record is a no-op.
func Normalize(raw RawCard, columns []string, synonyms map[string]string) Record {
	rec := NewRecord(columns)

	canonical := make(map[string]bool, len(columns))
	for _, c := range columns {
		canonical[c] = true
	}

	for label, value := range raw {
		if canonical[label] {
			rec[label] = value
			continue
		}
		if col, ok := synonyms[label]; ok && canonical[col] {
			rec[col] = value
			continue
		}
		if col, ok := resolveLoose(label, columns, synonyms); ok {
			rec[col] = value
		}
	}
	return rec
}

// resolveLoose matches a label against columns and synonym keys ignoring
// case, surrounding whitespace, and a trailing colon.
func resolveLoose(label string, columns []string, synonyms map[string]string) (string, bool) {
	want := looseLabel(label)
	for _, c := range columns {
		if looseLabel(c) == want {
			return c, true
		}
	}
	for k, col := range synonyms {
		if looseLabel(k) == want {
			return col, true
		}
	}
	return "", false
}

func looseLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":")
	return strings.ToLower(strings.TrimSpace(s))
}

// CollapsePhone removes all whitespace inside a phone-like value while
// preserving a leading plus sign.
func CollapsePhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// DigitsOnly strips every non-digit rune, as used for phone comparison.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
