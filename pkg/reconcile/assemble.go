package reconcile

import (
	"github.com/reconlab/tabdiff/pkg/dataset"
)

// RowSource classifies where a result row's entity was found.
type RowSource string

const (
	// RowSourceBoth marks entities present on both sides.
	RowSourceBoth RowSource = "Both"
	// RowSourceLeftOnly marks entities present only on the left side.
	RowSourceLeftOnly RowSource = "LeftOnly"
	// RowSourceRightOnly marks entities present only on the right side.
	RowSourceRightOnly RowSource = "RightOnly"
)

// Reserved result column names. Per-column names are derived from side names
// and labels, so only these two are fixed.
const (
	ColRowSource    = "Row_Source"
	ColOverallMatch = "Overall_Match"
)

// Row is one assembled result row. Rows are built once and read-only
// thereafter; cell lookups go through Cell.
type Row struct {
	Source RowSource
	Key    JoinKey

	cells map[string]dataset.Value
}

// Cell returns the value of the named column, Null if the row has no such
// column.
func (r *Row) Cell(column string) dataset.Value {
	v, ok := r.cells[column]
	if !ok {
		return dataset.Null()
	}
	return v
}

// Cells returns the row's values in the given column order.
func (r *Row) Cells(columns []string) []dataset.Value {
	out := make([]dataset.Value, len(columns))
	for i, c := range columns {
		out[i] = r.Cell(c)
	}
	return out
}

// Column name builders. Side values are prefixed with the side's display
// name; labels become suffixes, which is why labels must be unique.

func (e *Engine) leftColumn(label string) string {
	return e.cfg.Left.Name + "_" + label
}

func (e *Engine) rightColumn(label string) string {
	return e.cfg.Right.Name + "_" + label
}

func diffColumn(label string) string {
	return "Diff_" + label
}

func matchColumn(label string) string {
	return "Match_" + label
}

func directionColumn(label string) string {
	return "Direction_" + label
}

// rowSourceText renders the Row_Source cell under the side's display name,
// e.g. "QES Only" for a left-only row when the left side is named QES.
func (e *Engine) rowSourceText(source RowSource) string {
	switch source {
	case RowSourceLeftOnly:
		return e.cfg.Left.Name + " Only"
	case RowSourceRightOnly:
		return e.cfg.Right.Name + " Only"
	default:
		return string(RowSourceBoth)
	}
}

// assembledColumns returns the natural column order produced by assembly:
// row source, key columns, the per-compare-column group, additional column
// pairs, then the overall match flag.
func (e *Engine) assembledColumns() []string {
	columns := []string{ColRowSource}
	columns = append(columns, e.cfg.Keys.Left...)
	for _, col := range e.columns {
		label := col.spec.Label
		columns = append(columns,
			e.leftColumn(label), e.rightColumn(label), diffColumn(label), matchColumn(label))
		if col.spec.Direction {
			columns = append(columns, directionColumn(label))
		}
	}
	for _, ac := range e.cfg.AdditionalColumns {
		columns = append(columns, e.leftColumn(ac.Label), e.rightColumn(ac.Label))
	}
	columns = append(columns, ColOverallMatch)
	return columns
}

// assembleBoth builds the result row for a matched pair: every compare column
// runs through its comparer and direction classifier, additional columns copy
// through untouched, and the overall flag is the conjunction of all matches.
func (e *Engine) assembleBoth(key JoinKey, left, right *dataset.Record) Row {
	row := Row{
		Source: RowSourceBoth,
		Key:    key,
		cells:  make(map[string]dataset.Value),
	}
	row.cells[ColRowSource] = dataset.String(e.rowSourceText(RowSourceBoth))
	for _, kc := range e.cfg.Keys.Left {
		row.cells[kc] = left.Get(kc)
	}

	anyMismatch := false
	for i := range e.columns {
		col := &e.columns[i]
		label := col.spec.Label
		leftVal := left.Get(col.spec.Left)
		rightVal := right.Get(col.spec.Right)

		row.cells[e.leftColumn(label)] = leftVal
		row.cells[e.rightColumn(label)] = rightVal

		result := col.compare(leftVal, rightVal, e.labels.NullVsValue)
		row.cells[diffColumn(label)] = result.Diff
		if result.Match {
			row.cells[matchColumn(label)] = dataset.String(e.labels.Match)
		} else {
			row.cells[matchColumn(label)] = dataset.String(e.labels.Mismatch)
			anyMismatch = true
		}

		if col.spec.Direction {
			row.cells[directionColumn(label)] = dataset.String(e.directionText(col.direction(leftVal, rightVal)))
		}
	}

	for _, ac := range e.cfg.AdditionalColumns {
		row.cells[e.leftColumn(ac.Label)] = getOptional(left, ac.Left)
		row.cells[e.rightColumn(ac.Label)] = getOptional(right, ac.Right)
	}

	if anyMismatch {
		row.cells[ColOverallMatch] = dataset.String(e.labels.OverallMismatch)
	} else {
		row.cells[ColOverallMatch] = dataset.String(e.labels.OverallMatch)
	}
	return row
}

// assembleOneSided builds a LeftOnly or RightOnly row. These are structurally
// different conditions, not comparison outcomes: compare columns carry the
// N/A diff sentinel and the warning flag instead of a match verdict. Key
// columns are always emitted under the left side's field names, mapped
// through the key-spec position correspondence.
func (e *Engine) assembleOneSided(key JoinKey, rec *dataset.Record, source RowSource) Row {
	row := Row{
		Source: source,
		Key:    key,
		cells:  make(map[string]dataset.Value),
	}
	row.cells[ColRowSource] = dataset.String(e.rowSourceText(source))

	if source == RowSourceLeftOnly {
		for _, kc := range e.cfg.Keys.Left {
			row.cells[kc] = rec.Get(kc)
		}
	} else {
		for i, kc := range e.cfg.Keys.Left {
			row.cells[kc] = rec.Get(e.cfg.Keys.Right[i])
		}
	}

	naDiff := e.labels.NALeftOnly
	overall := e.labels.OverallLeftOnly
	if source == RowSourceRightOnly {
		naDiff = e.labels.NARightOnly
		overall = e.labels.OverallRightOnly
	}

	for i := range e.columns {
		col := &e.columns[i]
		label := col.spec.Label

		if source == RowSourceLeftOnly {
			row.cells[e.leftColumn(label)] = rec.Get(col.spec.Left)
			row.cells[e.rightColumn(label)] = dataset.Null()
		} else {
			row.cells[e.leftColumn(label)] = dataset.Null()
			row.cells[e.rightColumn(label)] = rec.Get(col.spec.Right)
		}
		row.cells[diffColumn(label)] = dataset.String(naDiff)
		row.cells[matchColumn(label)] = dataset.String(e.labels.Warning)
		if col.spec.Direction {
			row.cells[directionColumn(label)] = dataset.String("")
		}
	}

	for _, ac := range e.cfg.AdditionalColumns {
		if source == RowSourceLeftOnly {
			row.cells[e.leftColumn(ac.Label)] = getOptional(rec, ac.Left)
			row.cells[e.rightColumn(ac.Label)] = dataset.Null()
		} else {
			row.cells[e.leftColumn(ac.Label)] = dataset.Null()
			row.cells[e.rightColumn(ac.Label)] = getOptional(rec, ac.Right)
		}
	}

	row.cells[ColOverallMatch] = dataset.String(overall)
	return row
}

// directionText maps a Direction to its display label; absent renders empty.
func (e *Engine) directionText(d Direction) string {
	switch d {
	case DirectionSame:
		return e.labels.Same
	case DirectionHigher:
		return e.labels.Higher
	case DirectionLower:
		return e.labels.Lower
	default:
		return ""
	}
}

// getOptional reads a field that may be unconfigured for one side.
func getOptional(rec *dataset.Record, field string) dataset.Value {
	if field == "" {
		return dataset.Null()
	}
	return rec.Get(field)
}
