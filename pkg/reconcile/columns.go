package reconcile

import "strings"

// The column-order template is a small token language applied once to the
// fully assembled row set:
//
//	{keys}               the ordered left-side key field names
//	{row_source}         the row-source column
//	{overall_match}      the overall-match column
//	{compare:<label>}    the compare group for the named column
//	{additional:<label>} the left/right pair for the named additional column
//	anything else        a literal column name, inserted verbatim
//
// Tokens parse into a typed AST so the resolution logic below works over
// structured data rather than string slicing.

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenKeys
	tokenRowSource
	tokenOverallMatch
	tokenCompare
	tokenAdditional
)

type orderToken struct {
	kind  tokenKind
	label string
}

// parseOrderToken parses one template token.
func parseOrderToken(raw string) orderToken {
	token := strings.TrimSpace(raw)
	switch token {
	case "{keys}":
		return orderToken{kind: tokenKeys}
	case "{row_source}":
		return orderToken{kind: tokenRowSource}
	case "{overall_match}":
		return orderToken{kind: tokenOverallMatch}
	}
	if label, ok := tokenArg(token, "{compare:"); ok {
		return orderToken{kind: tokenCompare, label: label}
	}
	if label, ok := tokenArg(token, "{additional:"); ok {
		return orderToken{kind: tokenAdditional, label: label}
	}
	return orderToken{kind: tokenLiteral, label: token}
}

func tokenArg(token, prefix string) (string, bool) {
	if strings.HasPrefix(token, prefix) && strings.HasSuffix(token, "}") {
		return token[len(prefix) : len(token)-1], true
	}
	return "", false
}

// expand turns a token into candidate column names. Unknown labels simply
// expand to names no assembled column has, and are dropped downstream.
func (e *Engine) expand(t orderToken) []string {
	switch t.kind {
	case tokenKeys:
		return e.cfg.Keys.Left
	case tokenRowSource:
		return []string{ColRowSource}
	case tokenOverallMatch:
		return []string{ColOverallMatch}
	case tokenCompare:
		names := []string{
			e.leftColumn(t.label), e.rightColumn(t.label),
			diffColumn(t.label), matchColumn(t.label),
		}
		for _, col := range e.columns {
			if col.spec.Label == t.label && col.spec.Direction {
				names = append(names, directionColumn(t.label))
			}
		}
		return names
	case tokenAdditional:
		return []string{e.leftColumn(t.label), e.rightColumn(t.label)}
	default:
		return []string{t.label}
	}
}

// resolveColumnOrder applies the configured template to the assembled column
// list. Candidates that name no assembled column are dropped (a misconfigured
// template must not crash), and every assembled column left unreferenced is
// appended in assembly order, so the result is always a permutation of the
// assembled columns. With no template, assembly order is returned unchanged.
func (e *Engine) resolveColumnOrder(assembled []string) []string {
	if len(e.cfg.ColumnOrder) == 0 {
		return assembled
	}

	exists := make(map[string]bool, len(assembled))
	for _, c := range assembled {
		exists[c] = true
	}

	ordered := make([]string, 0, len(assembled))
	used := make(map[string]bool, len(assembled))
	for _, raw := range e.cfg.ColumnOrder {
		for _, name := range e.expand(parseOrderToken(raw)) {
			if exists[name] && !used[name] {
				ordered = append(ordered, name)
				used[name] = true
			}
		}
	}

	for _, c := range assembled {
		if !used[c] {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
