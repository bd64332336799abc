package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeoJSONTablesBuild(t *testing.T) {
	tables, err := BuildTables(newGeoJSONGrammar())
	require.NoError(t, err)
	require.Greater(t, tables.States(), 50)

	// The initial state only admits the opening brace.
	require.Equal(t, []TokenType{TokenLBrace}, tables.Expected(0))
}

func TestTablesEveryRuleReducible(t *testing.T) {
	used := make(map[int]bool)
	accept := false
	for _, row := range geoJSONTables.Action {
		for _, a := range row {
			switch a.Kind {
			case ActionReduce:
				used[a.Operand] = true
			case ActionAccept:
				accept = true
			}
		}
	}
	require.True(t, accept, "no accept action")
	for _, r := range geoJSONGrammar.Rules[1:] {
		if !used[r.ID] {
			t.Errorf("rule %d (%v) is never reduced", r.ID, r)
		}
	}
}

func TestBuildTablesReportsConflict(t *testing.T) {
	// A dangling optional: "x" can reduce to a or b after the same prefix.
	g := &Grammar{byLHS: make(map[symbol][]*Rule)}
	g.add(ntAccept, nil, ntGeometry)
	g.add(ntGeometry, nil, ntCRS)
	g.add(ntGeometry, nil, ntBBox)
	g.add(ntCRS, nil, tNumber)
	g.add(ntBBox, nil, tNumber)

	_, err := BuildTables(g)
	var conflict *ErrConflict
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, TokenEOF, conflict.Terminal)
	require.Contains(t, err.Error(), "reduce/reduce")
}

func TestRuleString(t *testing.T) {
	var found bool
	for _, r := range geoJSONGrammar.Rules {
		if r.LHS == ntPositions && len(r.RHS) == 3 {
			require.Equal(t, "positions ::= positions ',' position.", r.String())
			found = true
		}
	}
	require.True(t, found)
}

func TestFollowSets(t *testing.T) {
	g := geoJSONGrammar
	nullable, first := firstSets(g)
	follow := followSets(g, nullable, first)

	require.True(t, nullable[ntCRSClause])
	require.True(t, nullable[ntBBoxClause])
	require.False(t, nullable[ntPositions])

	want := map[symbol][]TokenType{
		ntCRSClause:  {TokenKeyCoordinates, TokenKeyGeometries, TokenKeyBBox},
		ntBBoxClause: {TokenKeyCoordinates, TokenKeyGeometries},
		ntPositions:  {TokenRBracket, TokenComma},
		ntGeometry:   {TokenEOF},
	}
	for nt, terms := range want {
		var names []string
		for tt := TokenType(0); tt < numTokenTypes; tt++ {
			if follow[nt].has(tt) {
				names = append(names, tt.String())
			}
		}
		for _, tt := range terms {
			if !follow[nt].has(tt) {
				t.Errorf("FOLLOW(%v) = {%s}, missing %v", nt, strings.Join(names, " "), tt)
			}
		}
		if len(names) != len(terms) {
			t.Errorf("FOLLOW(%v) = {%s}, want %d terminals", nt, strings.Join(names, " "), len(terms))
		}
	}
}
