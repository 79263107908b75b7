package output

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reconlab/tabdiff/pkg/reconcile"
)

// ResultTable converts reconciliation rows to table data in the result's
// resolved column order. Null cells render empty.
func ResultTable(res *reconcile.Result) Data {
	rows := make([][]string, 0, len(res.Rows))
	for i := range res.Rows {
		cells := res.Rows[i].Cells(res.Columns)
		row := make([]string, len(cells))
		for j, v := range cells {
			if !v.IsNull() {
				row[j] = v.String()
			}
		}
		rows = append(rows, row)
	}
	return Data{
		Headers: res.Columns,
		Rows:    rows,
	}
}

// SummaryTable converts a run summary to a property/value table.
func SummaryTable(s reconcile.Summary) Data {
	rows := [][]string{
		{"Total Rows", fmt.Sprintf("%d", s.TotalRows)},
		{"Matched", fmt.Sprintf("%d/%d", s.MatchedRows, s.BothRows)},
		{"Mismatched", fmt.Sprintf("%d/%d", s.MismatchedRows, s.BothRows)},
		{s.LeftName() + " Only", fmt.Sprintf("%d", s.LeftOnlyRows)},
		{s.RightName() + " Only", fmt.Sprintf("%d", s.RightOnlyRows)},
	}
	if rate, ok := s.MatchRate(); ok {
		rows = append(rows, []string{"Match Rate", fmt.Sprintf("%.1f%%", rate*100)})
	}
	if s.DuplicateLeftKeys > 0 || s.DuplicateRightKeys > 0 {
		rows = append(rows, []string{"Duplicate Keys",
			fmt.Sprintf("%d (%s), %d (%s)", s.DuplicateLeftKeys, s.LeftName(), s.DuplicateRightKeys, s.RightName())})
	}

	caser := cases.Title(language.English)
	for _, label := range sortedKeys(s.ColumnMismatches) {
		rows = append(rows, []string{
			caser.String(label) + " Mismatches",
			fmt.Sprintf("%d", s.ColumnMismatches[label]),
		})
	}
	for _, label := range sortedKeys(s.Directions) {
		d := s.Directions[label]
		rows = append(rows, []string{
			caser.String(label) + " Direction",
			fmt.Sprintf("higher %d, lower %d, same %d", d.Higher, d.Lower, d.Same),
		})
	}

	return Data{
		Headers:         []string{"Metric", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// Document is the serializable view of a run for JSON and YAML output.
type Document struct {
	Columns []string            `json:"columns" yaml:"columns"`
	Rows    []map[string]string `json:"rows" yaml:"rows"`
	Summary SummaryDocument     `json:"summary" yaml:"summary"`
}

// SummaryDocument is the serializable view of a run summary.
type SummaryDocument struct {
	TotalRows          int                                   `json:"total_rows" yaml:"total_rows"`
	BothRows           int                                   `json:"both_rows" yaml:"both_rows"`
	MatchedRows        int                                   `json:"matched_rows" yaml:"matched_rows"`
	MismatchedRows     int                                   `json:"mismatched_rows" yaml:"mismatched_rows"`
	LeftOnlyRows       int                                   `json:"left_only_rows" yaml:"left_only_rows"`
	RightOnlyRows      int                                   `json:"right_only_rows" yaml:"right_only_rows"`
	DuplicateLeftKeys  int                                   `json:"duplicate_left_keys,omitempty" yaml:"duplicate_left_keys,omitempty"`
	DuplicateRightKeys int                                   `json:"duplicate_right_keys,omitempty" yaml:"duplicate_right_keys,omitempty"`
	ColumnMismatches   map[string]int                        `json:"column_mismatches,omitempty" yaml:"column_mismatches,omitempty"`
	Directions         map[string]reconcile.DirectionCounts `json:"directions,omitempty" yaml:"directions,omitempty"`
}

// NewDocument builds the serializable view of a result. Cells serialize as
// strings keyed by column name; null cells are omitted.
func NewDocument(res *reconcile.Result) Document {
	rows := make([]map[string]string, 0, len(res.Rows))
	for i := range res.Rows {
		m := make(map[string]string, len(res.Columns))
		for _, col := range res.Columns {
			v := res.Rows[i].Cell(col)
			if !v.IsNull() {
				m[col] = v.String()
			}
		}
		rows = append(rows, m)
	}

	return Document{
		Columns: res.Columns,
		Rows:    rows,
		Summary: SummaryDocument{
			TotalRows:          res.Summary.TotalRows,
			BothRows:           res.Summary.BothRows,
			MatchedRows:        res.Summary.MatchedRows,
			MismatchedRows:     res.Summary.MismatchedRows,
			LeftOnlyRows:       res.Summary.LeftOnlyRows,
			RightOnlyRows:      res.Summary.RightOnlyRows,
			DuplicateLeftKeys:  res.Summary.DuplicateLeftKeys,
			DuplicateRightKeys: res.Summary.DuplicateRightKeys,
			ColumnMismatches:   res.Summary.ColumnMismatches,
			Directions:         res.Summary.Directions,
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
