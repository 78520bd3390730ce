package cardcrawl

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeyFunc derives the dedup key for a record. Key computation is pure and
// deterministic given a Record.
type KeyFunc func(Record) string

// Dedupe removes records sharing a key, keeping the first record observed
// for each key in original order. Running Dedupe on its own output is a
// no-op.
func Dedupe(records []Record, key KeyFunc) []Record {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// CompositeKey derives keys from a subset of columns: values are lowercased
// and trimmed, and columns listed in phoneColumns are reduced to their
// digits. Two records differing only in case, surrounding whitespace, or
// phone punctuation therefore collapse.
//
// Note that columns outside keyColumns play no part: two genuinely distinct
// rows agreeing on every key column are treated as duplicates.
func CompositeKey(keyColumns, phoneColumns []string) KeyFunc {
	phone := make(map[string]bool, len(phoneColumns))
	for _, c := range phoneColumns {
		phone[c] = true
	}
	return func(r Record) string {
		parts := make([]string, len(keyColumns))
		for i, c := range keyColumns {
			v := r[c]
			if phone[c] {
				parts[i] = DigitsOnly(v)
			} else {
				parts[i] = strings.ToLower(strings.TrimSpace(v))
			}
		}
		return strings.Join(parts, "\x1f")
	}
}

// RowKey derives keys from full-row structural equality over the given
// columns, for sources where no single field is guaranteed populated.
func RowKey(columns []string) KeyFunc {
	return func(r Record) string {
		d := xxhash.New()
		for _, c := range columns {
			_, _ = d.WriteString(r[c])
			_, _ = d.Write([]byte{0x1f})
		}
		return strconv.FormatUint(d.Sum64(), 16)
	}
}

// KeyFor returns the dedup key function a source's configuration calls for.
func KeyFor(src *Source) KeyFunc {
	if len(src.KeyColumns) == 0 {
		return RowKey(src.Columns)
	}
	return CompositeKey(src.KeyColumns, src.PhoneColumns)
}
