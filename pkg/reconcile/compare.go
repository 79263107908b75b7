package reconcile

import (
	"fmt"
	"math"
	"strings"

	"github.com/reconlab/tabdiff/pkg/dataset"
)

// Direction classifies which side holds the larger numeric value, relative
// to the left (reference) side.
type Direction int

const (
	// DirectionNone means no direction applies (null or unparseable input).
	DirectionNone Direction = iota
	// DirectionSame means the values agree within tolerance.
	DirectionSame
	// DirectionHigher means the right value exceeds the left beyond tolerance.
	DirectionHigher
	// DirectionLower means the right value falls below the left beyond tolerance.
	DirectionLower
)

// comparison is the outcome of one field-pair comparison.
type comparison struct {
	Match bool
	Diff  dataset.Value
}

// comparer is the closed set of per-dtype comparison behaviors. The concrete
// comparer for each column is selected once when the configuration compiles,
// not per comparison.
type comparer interface {
	compare(left, right dataset.Value) comparison
	direction(left, right dataset.Value) Direction
}

// newComparer returns the comparer for a validated compare column.
func newComparer(cc CompareColumn) comparer {
	if cc.DType == DTypeNumeric {
		return numericComparer{tolerance: cc.Tolerance}
	}
	return textComparer{}
}

// numericComparer compares values as floating point within a tolerance.
type numericComparer struct {
	tolerance float64
}

func (c numericComparer) compare(left, right dataset.Value) comparison {
	lf, lok := parseNumeric(left)
	rf, rok := parseNumeric(right)
	if !lok || !rok {
		// A parse failure never aborts the run; it degrades to a
		// case-insensitive string comparison with a readable diff.
		return comparison{
			Match: strings.EqualFold(left.String(), right.String()),
			Diff:  dataset.String(fmt.Sprintf("%s vs %s", left.String(), right.String())),
		}
	}
	diff := round6(rf - lf)
	return comparison{
		Match: math.Abs(diff) <= c.tolerance,
		Diff:  dataset.Number(diff),
	}
}

func (c numericComparer) direction(left, right dataset.Value) Direction {
	if left.IsNull() || right.IsNull() {
		return DirectionNone
	}
	lf, lok := parseNumeric(left)
	rf, rok := parseNumeric(right)
	if !lok || !rok {
		return DirectionNone
	}
	delta := rf - lf
	switch {
	case math.Abs(delta) <= c.tolerance:
		return DirectionSame
	case delta > c.tolerance:
		return DirectionHigher
	default:
		return DirectionLower
	}
}

// textComparer compares values as trimmed, case-insensitive strings.
type textComparer struct{}

func (textComparer) compare(left, right dataset.Value) comparison {
	match := strings.EqualFold(strings.TrimSpace(left.String()), strings.TrimSpace(right.String()))
	if match {
		return comparison{Match: true, Diff: dataset.String("")}
	}
	return comparison{
		Match: false,
		Diff:  dataset.String(fmt.Sprintf("%s -> %s", left.String(), right.String())),
	}
}

func (textComparer) direction(_, _ dataset.Value) Direction {
	return DirectionNone
}

// parseNumeric reads a value as a float, tolerating a trailing percent sign
// ("95.5%" and 95.5 are the same measurement stored two ways).
func parseNumeric(v dataset.Value) (float64, bool) {
	if v.IsNull() {
		return 0, false
	}
	if s, ok := v.Raw().(string); ok {
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "%")
		return dataset.String(s).Float()
	}
	return v.Float()
}

// round6 rounds to six decimal places, the engine's diff precision.
func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// compiledColumn is a compare column bound to its comparer, value map, and
// diff sentinels. Null handling happens here, before dtype dispatch.
type compiledColumn struct {
	spec CompareColumn
	cmp  comparer
}

func compileColumns(columns []CompareColumn) []compiledColumn {
	compiled := make([]compiledColumn, len(columns))
	for i, cc := range columns {
		compiled[i] = compiledColumn{spec: cc, cmp: newComparer(cc)}
	}
	return compiled
}

// mapLeft applies the column's value map to the stringified left value,
// rewriting the left system's vocabulary into the right system's before
// comparison. Values outside the map pass through untouched.
func (c *compiledColumn) mapLeft(left dataset.Value) dataset.Value {
	if len(c.spec.ValueMap) == 0 || left.IsNull() {
		return left
	}
	if mapped, ok := c.spec.ValueMap[strings.TrimSpace(left.String())]; ok {
		return dataset.String(mapped)
	}
	return left
}

// compare runs the full per-column comparison: null handling, value-map
// rewrite, then dtype dispatch. nullDiff is the sentinel reported when
// exactly one side is null.
func (c *compiledColumn) compare(left, right dataset.Value, nullDiff string) comparison {
	if left.IsNull() && right.IsNull() {
		return comparison{Match: true, Diff: dataset.Number(0)}
	}
	if left.IsNull() || right.IsNull() {
		return comparison{Match: false, Diff: dataset.String(nullDiff)}
	}
	return c.cmp.compare(c.mapLeft(left), right)
}

// direction classifies the comparison direction for direction-flagged
// columns. Only meaningful for numeric columns; text columns return none.
func (c *compiledColumn) direction(left, right dataset.Value) Direction {
	if !c.spec.Direction {
		return DirectionNone
	}
	return c.cmp.direction(c.mapLeft(left), right)
}
