package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeStructure(t *testing.T) {
	toks, err := Tokenize([]byte(`{"type": "Point", "coordinates": [1.5, -2.5e1]}`))
	require.NoError(t, err)
	require.Equal(t, []TokenType{
		TokenLBrace, TokenKeyType, TokenColon, TokenPoint, TokenComma,
		TokenKeyCoordinates, TokenColon, TokenLBracket, TokenNumber, TokenComma,
		TokenNumber, TokenRBracket, TokenRBrace, TokenEOF,
	}, tokenTypes(toks))
	require.Equal(t, 1.5, toks[8].Value)
	require.Equal(t, -25.0, toks[10].Value)
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{`"type"`, TokenKeyType},
		{`"coordinates"`, TokenKeyCoordinates},
		{`"geometries"`, TokenKeyGeometries},
		{`"bbox"`, TokenKeyBBox},
		{`"crs"`, TokenKeyCRS},
		{`"name"`, TokenKeyName},
		{`"properties"`, TokenKeyProperties},
		{`"Point"`, TokenPoint},
		{`"LineString"`, TokenLineString},
		{`"Polygon"`, TokenPolygon},
		{`"MultiPoint"`, TokenMultiPoint},
		{`"MultiLineString"`, TokenMultiLineString},
		{`"MultiPolygon"`, TokenMultiPolygon},
		{`"GeometryCollection"`, TokenGeometryCollection},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer([]byte(tt.input)).Next()
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if tok.Type != tt.want {
				t.Errorf("Next() = %v, want %v", tok.Type, tt.want)
			}
		})
	}
}

func TestLexerSRID(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
		srid  int
	}{
		{`"EPSG:4326"`, TokenShortSRID, 4326},
		{`"EPSG:3857"`, TokenShortSRID, 3857},
		{`"urn:ogc:def:crs:EPSG:4326"`, TokenLongSRID, 4326},
		{`"urn:ogc:def:crs:EPSG::4326"`, TokenLongSRID, 4326},
		{`"urn:ogc:def:crs:EPSG:6.6:32633"`, TokenLongSRID, 32633},
		{`"urn:ogc:def:crs:OGC:1.3:CRS84"`, TokenLongSRID, 4326},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer([]byte(tt.input)).Next()
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if tok.Type != tt.want || tok.SRID != tt.srid {
				t.Errorf("Next() = %v srid %d, want %v srid %d", tok.Type, tok.SRID, tt.want, tt.srid)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"-0", 0},
		{"42", 42},
		{"-71.05", -71.05},
		{"1e3", 1000},
		{"1.5E-2", 0.015},
		{"2e+2", 200},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer([]byte(tt.input)).Next()
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if tok.Type != TokenNumber || tok.Value != tt.want {
				t.Errorf("Next() = %v, want NUMBER(%g)", tok, tt.want)
			}
		})
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare minus", "-"},
		{"trailing dot", "1."},
		{"leading dot", ".5"},
		{"empty exponent", "1e"},
		{"number glued to letter", "12abc"},
		{"double minus", "--1"},
		{"unterminated string", `"coordinates`},
		{"string across newline", "\"type\n\""},
		{"unknown string", `"Feature"`},
		{"lowercase type name", `"point"`},
		{"short srid without code", `"EPSG:"`},
		{"long srid with letters", `"urn:ogc:def:crs:EPSG::43a"`},
		{"stray character", "@"},
		{"literal true", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input))
			var lexErr *ErrLex
			if !errors.As(err, &lexErr) {
				t.Fatalf("Tokenize(%q) error = %v, want *ErrLex", tt.input, err)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	toks, err := Tokenize([]byte("{\n  \"type\""))
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 1, toks[0].Col)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 3, toks[1].Col)
	require.Equal(t, 4, toks[1].Pos)
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := NewLexer([]byte("  "))
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, TokenEOF, tok.Type)
	}
}
