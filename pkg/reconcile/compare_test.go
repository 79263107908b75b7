package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reconlab/tabdiff/pkg/dataset"
)

func compiled(cc CompareColumn) *compiledColumn {
	c := compiledColumn{spec: cc, cmp: newComparer(cc)}
	return &c
}

// TestNumericCompare tests tolerance-based numeric comparison.
func TestNumericCompare(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		left      dataset.Value
		right     dataset.Value
		match     bool
		diff      dataset.Value
	}{
		{
			name:  "exact match",
			left:  dataset.Number(12), right: dataset.Number(12),
			match: true, diff: dataset.Number(0),
		},
		{
			name: "within tolerance", tolerance: 0.5,
			left:  dataset.Number(10), right: dataset.Number(10.4),
			match: true, diff: dataset.Number(0.4),
		},
		{
			name: "beyond tolerance", tolerance: 0.5,
			left:  dataset.Number(10), right: dataset.Number(11),
			match: false, diff: dataset.Number(1),
		},
		{
			name:  "string numbers parse",
			left:  dataset.String("11.0"), right: dataset.String("11"),
			match: true, diff: dataset.Number(0),
		},
		{
			name:  "percent sign strips",
			left:  dataset.String("95.5%"), right: dataset.Number(95.5),
			match: true, diff: dataset.Number(0),
		},
		{
			name:  "diff rounds to six places",
			left:  dataset.Number(0.1), right: dataset.Number(0.3),
			match: false, diff: dataset.Number(0.2),
		},
		{
			name:  "unparseable falls back to text equality",
			left:  dataset.String("N/A"), right: dataset.String("n/a"),
			match: true, diff: dataset.String("N/A vs n/a"),
		},
		{
			name:  "unparseable mismatch keeps readable diff",
			left:  dataset.String("abc"), right: dataset.Number(5),
			match: false, diff: dataset.String("abc vs 5"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := numericComparer{tolerance: tt.tolerance}
			got := c.compare(tt.left, tt.right)
			assert.Equal(t, tt.match, got.Match)
			assert.Equal(t, tt.diff, got.Diff)
		})
	}
}

// TestNumericDirection tests direction classification relative to the left side.
func TestNumericDirection(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		left      dataset.Value
		right     dataset.Value
		expected  Direction
	}{
		{name: "same within tolerance", tolerance: 1, left: dataset.Number(10), right: dataset.Number(10.5), expected: DirectionSame},
		{name: "right higher", left: dataset.Number(10), right: dataset.Number(12), expected: DirectionHigher},
		{name: "right lower", left: dataset.Number(10), right: dataset.Number(8), expected: DirectionLower},
		{name: "null has no direction", left: dataset.Null(), right: dataset.Number(1), expected: DirectionNone},
		{name: "unparseable has no direction", left: dataset.String("x"), right: dataset.Number(1), expected: DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := numericComparer{tolerance: tt.tolerance}
			assert.Equal(t, tt.expected, c.direction(tt.left, tt.right))
		})
	}
}

// TestTextCompare tests trimmed case-insensitive text comparison.
func TestTextCompare(t *testing.T) {
	tests := []struct {
		name  string
		left  dataset.Value
		right dataset.Value
		match bool
		diff  string
	}{
		{name: "case folds", left: dataset.String("Yes"), right: dataset.String("YES"), match: true, diff: ""},
		{name: "whitespace trims", left: dataset.String(" Y "), right: dataset.String("Y"), match: true, diff: ""},
		{name: "mismatch shows transition", left: dataset.String("Y"), right: dataset.String("N"), match: false, diff: "Y -> N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textComparer{}.compare(tt.left, tt.right)
			assert.Equal(t, tt.match, got.Match)
			assert.Equal(t, dataset.String(tt.diff), got.Diff)
		})
	}
}

// TestCompiledColumnNullHandling tests that null handling happens before
// dtype dispatch.
func TestCompiledColumnNullHandling(t *testing.T) {
	col := compiled(CompareColumn{Left: "a", Right: "b", Label: "a", DType: DTypeNumeric})

	t.Run("both null match", func(t *testing.T) {
		got := col.compare(dataset.Null(), dataset.Null(), "NULL vs value")
		assert.True(t, got.Match)
		assert.Equal(t, dataset.Number(0), got.Diff)
	})

	t.Run("left null mismatch", func(t *testing.T) {
		got := col.compare(dataset.Null(), dataset.Number(5), "NULL vs value")
		assert.False(t, got.Match)
		assert.Equal(t, dataset.String("NULL vs value"), got.Diff)
	})

	t.Run("right null mismatch", func(t *testing.T) {
		got := col.compare(dataset.Number(5), dataset.Null(), "NULL vs value")
		assert.False(t, got.Match)
		assert.Equal(t, dataset.String("NULL vs value"), got.Diff)
	})
}

// TestCompiledColumnValueMap tests left-value vocabulary rewriting.
func TestCompiledColumnValueMap(t *testing.T) {
	col := compiled(CompareColumn{
		Left: "a", Right: "b", Label: "a", DType: DTypeText,
		ValueMap: map[string]string{"Y": "Yes", "N": "No"},
	})

	t.Run("mapped value matches", func(t *testing.T) {
		got := col.compare(dataset.String("Y"), dataset.String("Yes"), "")
		assert.True(t, got.Match)
	})

	t.Run("map applies to trimmed left", func(t *testing.T) {
		got := col.compare(dataset.String(" Y "), dataset.String("Yes"), "")
		assert.True(t, got.Match)
	})

	t.Run("unmapped value passes through", func(t *testing.T) {
		got := col.compare(dataset.String("Maybe"), dataset.String("Maybe"), "")
		assert.True(t, got.Match)
	})

	t.Run("right side never maps", func(t *testing.T) {
		got := col.compare(dataset.String("Yes"), dataset.String("Y"), "")
		assert.False(t, got.Match)
	})
}

// TestCompiledColumnDirectionGate tests the per-column direction flag.
func TestCompiledColumnDirectionGate(t *testing.T) {
	flagged := compiled(CompareColumn{Left: "a", Right: "b", Label: "a", DType: DTypeNumeric, Direction: true})
	unflagged := compiled(CompareColumn{Left: "a", Right: "b", Label: "a", DType: DTypeNumeric})

	assert.Equal(t, DirectionHigher, flagged.direction(dataset.Number(1), dataset.Number(2)))
	assert.Equal(t, DirectionNone, unflagged.direction(dataset.Number(1), dataset.Number(2)))
}

// TestParseNumeric tests the percent-tolerant numeric reading.
func TestParseNumeric(t *testing.T) {
	f, ok := parseNumeric(dataset.String(" 95.5% "))
	assert.True(t, ok)
	assert.Equal(t, 95.5, f)

	_, ok = parseNumeric(dataset.Null())
	assert.False(t, ok)

	f, ok = parseNumeric(dataset.Int(7))
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)
}
