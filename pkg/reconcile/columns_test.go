package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseOrderToken tests the template token grammar.
func TestParseOrderToken(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected orderToken
	}{
		{name: "keys", raw: "{keys}", expected: orderToken{kind: tokenKeys}},
		{name: "row source", raw: "{row_source}", expected: orderToken{kind: tokenRowSource}},
		{name: "overall match", raw: "{overall_match}", expected: orderToken{kind: tokenOverallMatch}},
		{name: "compare", raw: "{compare:Provider_Count}", expected: orderToken{kind: tokenCompare, label: "Provider_Count"}},
		{name: "additional", raw: "{additional:Members}", expected: orderToken{kind: tokenAdditional, label: "Members"}},
		{name: "literal column", raw: "Row_Source", expected: orderToken{kind: tokenLiteral, label: "Row_Source"}},
		{name: "whitespace trims", raw: "  {keys}  ", expected: orderToken{kind: tokenKeys}},
		{name: "unclosed brace is literal", raw: "{compare:x", expected: orderToken{kind: tokenLiteral, label: "{compare:x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrderToken(tt.raw))
		})
	}
}

func orderEngine(t *testing.T, order []string) *Engine {
	t.Helper()
	cfg := validConfig()
	cfg.CompareColumns[0].Direction = true
	cfg.AdditionalColumns = []AdditionalColumn{{Left: "Member_Count", Right: "member_count", Label: "Members"}}
	cfg.ColumnOrder = order
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

// TestResolveColumnOrder tests template application over assembled columns.
func TestResolveColumnOrder(t *testing.T) {
	t.Run("no template keeps assembly order", func(t *testing.T) {
		e := orderEngine(t, nil)
		assembled := e.assembledColumns()
		assert.Equal(t, assembled, e.resolveColumnOrder(assembled))
	})

	t.Run("tokens expand in order", func(t *testing.T) {
		e := orderEngine(t, []string{"{overall_match}", "{keys}", "{row_source}"})
		got := e.resolveColumnOrder(e.assembledColumns())
		assert.Equal(t, ColOverallMatch, got[0])
		assert.Equal(t, "County_Name", got[1])
		assert.Equal(t, "Specialty", got[2])
		assert.Equal(t, ColRowSource, got[3])
	})

	t.Run("compare token expands to full group", func(t *testing.T) {
		e := orderEngine(t, []string{"{compare:Provider_Count}"})
		got := e.resolveColumnOrder(e.assembledColumns())
		assert.Equal(t, []string{
			"QES_Provider_Count", "NIQ_Provider_Count",
			"Diff_Provider_Count", "Match_Provider_Count", "Direction_Provider_Count",
		}, got[:5])
	})

	t.Run("result is always a permutation", func(t *testing.T) {
		e := orderEngine(t, []string{"{compare:Nonexistent}", "Bogus_Column", "{keys}"})
		assembled := e.assembledColumns()
		got := e.resolveColumnOrder(assembled)
		assert.ElementsMatch(t, assembled, got)
	})

	t.Run("duplicate references keep first position", func(t *testing.T) {
		e := orderEngine(t, []string{"{row_source}", "{row_source}", "{keys}"})
		got := e.resolveColumnOrder(e.assembledColumns())
		count := 0
		for _, c := range got {
			if c == ColRowSource {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, ColRowSource, got[0])
	})

	t.Run("unreferenced columns append in assembly order", func(t *testing.T) {
		e := orderEngine(t, []string{"{overall_match}"})
		assembled := e.assembledColumns()
		got := e.resolveColumnOrder(assembled)
		require.Equal(t, len(assembled), len(got))
		assert.Equal(t, ColOverallMatch, got[0])
		// Everything after position 0 follows assembly order.
		rest := make([]string, 0, len(assembled)-1)
		for _, c := range assembled {
			if c != ColOverallMatch {
				rest = append(rest, c)
			}
		}
		assert.Equal(t, rest, got[1:])
	})
}
