package reconcile

import (
	"fmt"
	"strings"
)

// DirectionCounts aggregates direction outcomes for one direction-flagged
// column across the Both rows.
type DirectionCounts struct {
	Higher int
	Lower  int
	Same   int
}

// Summary holds the aggregate statistics for one reconciliation run.
type Summary struct {
	TotalRows      int
	BothRows       int
	MatchedRows    int
	MismatchedRows int
	LeftOnlyRows   int
	RightOnlyRows  int

	// Records silently discarded by the first-seen-wins duplicate key
	// policy, surfaced here so the blind spot is at least observable.
	DuplicateLeftKeys  int
	DuplicateRightKeys int

	// ColumnMismatches counts mismatched Both rows per compare label.
	ColumnMismatches map[string]int

	// Directions holds per-label direction counts for direction-flagged
	// columns.
	Directions map[string]DirectionCounts

	leftName  string
	rightName string
}

// LeftName returns the configured left side display name.
func (s Summary) LeftName() string { return s.leftName }

// RightName returns the configured right side display name.
func (s Summary) RightName() string { return s.rightName }

// MatchRate returns the fraction of Both rows that fully matched. The second
// return is false when no Both rows exist and the rate is undefined.
func (s Summary) MatchRate() (float64, bool) {
	if s.BothRows == 0 {
		return 0, false
	}
	return float64(s.MatchedRows) / float64(s.BothRows), true
}

// String renders the human-readable console summary.
func (s Summary) String() string {
	var b strings.Builder
	b.WriteString("Comparison Summary:\n")
	fmt.Fprintf(&b, "  Total rows examined : %d\n", s.TotalRows)
	if rate, ok := s.MatchRate(); ok {
		fmt.Fprintf(&b, "  Matched             : %d/%d (%.1f%%)\n", s.MatchedRows, s.BothRows, rate*100)
		fmt.Fprintf(&b, "  Mismatched          : %d/%d\n", s.MismatchedRows, s.BothRows)
	} else {
		b.WriteString("  Matched             : 0\n")
		b.WriteString("  Mismatched          : 0\n")
	}
	fmt.Fprintf(&b, "  %-20s: %d\n", s.leftName+" Only", s.LeftOnlyRows)
	fmt.Fprintf(&b, "  %-20s: %d\n", s.rightName+" Only", s.RightOnlyRows)
	if s.DuplicateLeftKeys > 0 || s.DuplicateRightKeys > 0 {
		fmt.Fprintf(&b, "  Duplicate keys      : %d (%s), %d (%s) - first record kept\n",
			s.DuplicateLeftKeys, s.leftName, s.DuplicateRightKeys, s.rightName)
	}
	return b.String()
}

// summarize computes the aggregate statistics with a read-only pass over the
// final row set.
func (e *Engine) summarize(rows []Row, p *partition) Summary {
	s := Summary{
		TotalRows:          len(rows),
		DuplicateLeftKeys:  p.dupLeft,
		DuplicateRightKeys: p.dupRight,
		ColumnMismatches:   make(map[string]int, len(e.columns)),
		Directions:         make(map[string]DirectionCounts),
		leftName:           e.cfg.Left.Name,
		rightName:          e.cfg.Right.Name,
	}

	for _, row := range rows {
		switch row.Source {
		case RowSourceLeftOnly:
			s.LeftOnlyRows++
			continue
		case RowSourceRightOnly:
			s.RightOnlyRows++
			continue
		}

		s.BothRows++
		if row.Cell(ColOverallMatch).String() == e.labels.OverallMatch {
			s.MatchedRows++
		} else {
			s.MismatchedRows++
		}

		for _, col := range e.columns {
			label := col.spec.Label
			if row.Cell(matchColumn(label)).String() == e.labels.Mismatch {
				s.ColumnMismatches[label]++
			}
			if col.spec.Direction {
				counts := s.Directions[label]
				switch row.Cell(directionColumn(label)).String() {
				case e.labels.Higher:
					counts.Higher++
				case e.labels.Lower:
					counts.Lower++
				case e.labels.Same:
					counts.Same++
				}
				s.Directions[label] = counts
			}
		}
	}

	return s
}
