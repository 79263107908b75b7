package reconcile

import (
	"slices"
	"strconv"
	"strings"

	"github.com/reconlab/tabdiff/pkg/dataset"
)

// NormalizeKeyPart canonicalizes one key component into a comparable token.
// Values that parse as numbers round-trip through float64 so that "011", 11,
// and 11.0 all normalize to "11"; spreadsheet tools and databases routinely
// disagree on leading zeros and numeric vs text storage for the same field.
// Non-numeric strings pass through trimmed. The function is idempotent.
func NormalizeKeyPart(v dataset.Value) string {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// JoinKey is the normalized composite key identifying "the same entity"
// across both datasets. Equality and ordering work over the token tuple, so
// no separator collision is possible.
type JoinKey struct {
	parts []string
}

// makeJoinKey builds the join key for a record over the given key fields.
func makeJoinKey(rec *dataset.Record, fields []string) JoinKey {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = NormalizeKeyPart(rec.Get(f))
	}
	return JoinKey{parts: parts}
}

// Parts returns the normalized key tokens in key-spec order.
func (k JoinKey) Parts() []string {
	return k.parts
}

// String renders the key for display and logging.
func (k JoinKey) String() string {
	return strings.Join(k.parts, "|")
}

// id returns a collision-free map identity for the tuple. Each token is
// length-prefixed, so distinct tuples can never encode to the same string.
func (k JoinKey) id() string {
	var b strings.Builder
	for _, p := range k.parts {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}

// compareJoinKeys orders keys lexicographically over the token tuple. Output
// row order derives from this, so it must be stable across runs.
func compareJoinKeys(a, b JoinKey) int {
	return slices.Compare(a.parts, b.parts)
}
