package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reconlab/tabdiff/pkg/dataset"
)

// TestNormalizeKeyPart tests key token canonicalization.
func TestNormalizeKeyPart(t *testing.T) {
	tests := []struct {
		name     string
		value    dataset.Value
		expected string
	}{
		{name: "leading zeros drop", value: dataset.String("011"), expected: "11"},
		{name: "integral float drops decimal", value: dataset.String("11.0"), expected: "11"},
		{name: "whitespace trims", value: dataset.String("  Harris  "), expected: "Harris"},
		{name: "numeric value", value: dataset.Number(11), expected: "11"},
		{name: "int value", value: dataset.Int(11), expected: "11"},
		{name: "text passes through", value: dataset.String("Fort Bend"), expected: "Fort Bend"},
		{name: "null renders empty", value: dataset.Null(), expected: ""},
		{name: "fraction keeps digits", value: dataset.String("1.50"), expected: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKeyPart(tt.value))
		})
	}
}

// TestNormalizeKeyPartIdempotent tests that a second pass changes nothing.
func TestNormalizeKeyPartIdempotent(t *testing.T) {
	inputs := []string{"011", "11.0", "  Harris  ", "1.50", "", "OB/GYN"}
	for _, in := range inputs {
		once := NormalizeKeyPart(dataset.String(in))
		twice := NormalizeKeyPart(dataset.String(once))
		assert.Equal(t, once, twice, "input %q", in)
	}
}

// TestJoinKeyIdentity tests that distinct tuples never collide, even when a
// naive separator join would make them equal.
func TestJoinKeyIdentity(t *testing.T) {
	a := JoinKey{parts: []string{"a|b", "c"}}
	b := JoinKey{parts: []string{"a", "b|c"}}

	assert.NotEqual(t, a.id(), b.id())
	assert.Equal(t, a.String(), b.String()) // display join is ambiguous on purpose
}

// TestJoinKeyOrdering tests lexicographic tuple ordering.
func TestJoinKeyOrdering(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected int
	}{
		{name: "equal", a: []string{"TX", "Harris"}, b: []string{"TX", "Harris"}, expected: 0},
		{name: "first part decides", a: []string{"CA"}, b: []string{"TX"}, expected: -1},
		{name: "second part decides", a: []string{"TX", "Bexar"}, b: []string{"TX", "Harris"}, expected: -1},
		{name: "prefix sorts first", a: []string{"TX"}, b: []string{"TX", "Harris"}, expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareJoinKeys(JoinKey{parts: tt.a}, JoinKey{parts: tt.b})
			switch {
			case tt.expected < 0:
				assert.Negative(t, got)
			case tt.expected > 0:
				assert.Positive(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

// TestMakeJoinKey tests key extraction and normalization from a record.
func TestMakeJoinKey(t *testing.T) {
	rec := dataset.NewRecord(
		[]string{"State", "County", "Code"},
		dataset.String(" TX "), dataset.String("Harris"), dataset.String("011"),
	)

	key := makeJoinKey(rec, []string{"State", "County", "Code"})
	assert.Equal(t, []string{"TX", "Harris", "11"}, key.Parts())
	assert.Equal(t, "TX|Harris|11", key.String())
}
