package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// feedAll feeds every token of input, including the trailing EOF if eof is set.
func feedAll(t *testing.T, a *automaton, input string, eof bool) error {
	t.Helper()
	toks, err := Tokenize([]byte(input))
	require.NoError(t, err)
	if !eof {
		toks = toks[:len(toks)-1]
	}
	for _, tok := range toks {
		if err := a.Feed(tok); err != nil {
			return err
		}
	}
	return nil
}

func TestAutomatonAccepts(t *testing.T) {
	arena := NewArena(0)
	a := newAutomaton(geoJSONTables, newBuilder(arena, true))

	require.NoError(t, feedAll(t, a, `{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`, true))
	require.True(t, a.Accepted())
	require.Equal(t, 1, a.Depth(), "only the geometry remains on the stack")

	c, ok := a.Result().(*Collection)
	require.True(t, ok)
	require.Equal(t, GeometryTypeMultiPoint, c.Type)
	require.Len(t, c.Points, 2)

	// Points were absorbed by the aggregate, which is still registered.
	require.Equal(t, 1, arena.Stats().Live)
}

func TestAutomatonStopsAtFirstBadToken(t *testing.T) {
	arena := NewArena(0)
	a := newAutomaton(geoJSONTables, newBuilder(arena, true))

	err := feedAll(t, a, `{"type":"Point","coordinates":[1,2]]`, true)
	var syn *ErrSyntax
	require.ErrorAs(t, err, &syn)
	require.Equal(t, TokenRBracket, syn.Token.Type)
	require.Equal(t, []TokenType{TokenRBrace}, syn.Expected)
	require.False(t, a.Accepted())

	// A dead automaton rejects everything.
	require.Error(t, a.Feed(Token{Type: TokenRBrace}))

	require.Equal(t, 1, arena.Stats().Live, "the reduced position is left for the sweep")
	arena.Sweep(true)
	require.Equal(t, 0, arena.Stats().Live)
}

func TestAutomatonReducesBeforeShift(t *testing.T) {
	arena := NewArena(0)
	a := newAutomaton(geoJSONTables, newBuilder(arena, true))

	// The second position is shifted but not yet reduced.
	require.NoError(t, feedAll(t, a, `{"type":"LineString","coordinates":[[0,0],[1,1]`, false))
	require.Equal(t, 1, arena.Stats().Live)

	// The closing bracket of the chain reduces the second position.
	require.NoError(t, a.Feed(Token{Type: TokenRBracket}))
	require.Equal(t, 2, arena.Stats().Live)

	// The closing brace reduces the linestring, releasing both points.
	require.NoError(t, a.Feed(Token{Type: TokenRBrace}))
	st := arena.Stats()
	require.Equal(t, 2, st.Released)
	require.Equal(t, 1, st.Live)
}
