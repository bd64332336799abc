package parser

import (
	"fmt"
	"strings"
)

// symbol is a grammar symbol. Values below numTokenTypes are terminals and
// equal the TokenType they match; the rest are nonterminals.
type symbol int

const (
	ntAccept symbol = symbol(numTokenTypes) + iota
	ntGeometry
	ntCRSClause
	ntBBoxClause
	ntCRS
	ntSRID
	ntBBox
	ntPosition
	ntPositions
	ntLinestring
	ntRing
	ntRings
	ntPolygon
	ntMultiPoint
	ntLinestrings
	ntMultiLinestring
	ntPolygons
	ntMultiPolygon
	ntMember
	ntMembers
	ntGeometries

	symbolEnd
)

const numNonterminals = int(symbolEnd) - int(numTokenTypes)

var nonterminalNames = [numNonterminals]string{
	"accept",
	"geometry",
	"crs_clause",
	"bbox_clause",
	"crs",
	"srid",
	"bbox",
	"position",
	"positions",
	"linestring",
	"ring",
	"rings",
	"polygon",
	"multipoint",
	"linestrings",
	"multilinestring",
	"polygons",
	"multipolygon",
	"member",
	"members",
	"geometries",
}

func (s symbol) terminal() bool {
	return s < symbol(numTokenTypes)
}

func (s symbol) String() string {
	if s.terminal() {
		return TokenType(s).String()
	}
	if s < symbolEnd {
		return nonterminalNames[s-symbol(numTokenTypes)]
	}
	return fmt.Sprintf("symbol(%d)", int(s))
}

// buildFunc synthesizes the value of a rule's left-hand side from the values
// of its right-hand side. Terminal values are Tokens.
type buildFunc func(b *builder, args []interface{}) (interface{}, error)

// Rule is one production of the grammar.
type Rule struct {
	ID    int
	LHS   symbol
	RHS   []symbol
	build buildFunc
}

func (r *Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.LHS.String())
	sb.WriteString(" ::=")
	for _, s := range r.RHS {
		sb.WriteByte(' ')
		sb.WriteString(s.String())
	}
	sb.WriteByte('.')
	return sb.String()
}

// Grammar is an ordered list of rules. Rule 0 is the augmented start rule.
type Grammar struct {
	Rules []*Rule
	byLHS map[symbol][]*Rule
}

func (g *Grammar) add(lhs symbol, build buildFunc, rhs ...symbol) {
	r := &Rule{ID: len(g.Rules), LHS: lhs, RHS: rhs, build: build}
	g.Rules = append(g.Rules, r)
	g.byLHS[lhs] = append(g.byLHS[lhs], r)
}

const (
	tLBrace   = symbol(TokenLBrace)
	tRBrace   = symbol(TokenRBrace)
	tLBracket = symbol(TokenLBracket)
	tRBracket = symbol(TokenRBracket)
	tComma    = symbol(TokenComma)
	tColon    = symbol(TokenColon)
	tNumber   = symbol(TokenNumber)
	tType     = symbol(TokenKeyType)
	tCoords   = symbol(TokenKeyCoordinates)
	tGeoms    = symbol(TokenKeyGeometries)
	tBBox     = symbol(TokenKeyBBox)
	tCRS      = symbol(TokenKeyCRS)
	tName     = symbol(TokenKeyName)
	tProps    = symbol(TokenKeyProperties)
)

// geometryKinds pairs each non-collection type name with the nonterminal
// holding its coordinates.
var geometryKinds = []struct {
	token TokenType
	typ   GeometryType
	body  symbol
}{
	{TokenPoint, GeometryTypePoint, ntPosition},
	{TokenLineString, GeometryTypeLineString, ntLinestring},
	{TokenPolygon, GeometryTypePolygon, ntPolygon},
	{TokenMultiPoint, GeometryTypeMultiPoint, ntMultiPoint},
	{TokenMultiLineString, GeometryTypeMultiLineString, ntMultiLinestring},
	{TokenMultiPolygon, GeometryTypeMultiPolygon, ntMultiPolygon},
}

// newGeoJSONGrammar declares the accepted language:
//
//	{"type": KIND, ["crs": CRS,] ["bbox": [...],] "coordinates": ...}
//	{"type": "GeometryCollection", ["crs": CRS,] ["bbox": [...],] "geometries": [...]}
//
// Members must appear in that order. Collection members carry neither crs
// nor bbox.
func newGeoJSONGrammar() *Grammar {
	g := &Grammar{byLHS: make(map[symbol][]*Rule)}

	g.add(ntAccept, nil, ntGeometry)

	for _, k := range geometryKinds {
		g.add(ntGeometry, geometryRule(k.typ),
			tLBrace, tType, tColon, symbol(k.token), tComma,
			ntCRSClause, ntBBoxClause,
			tCoords, tColon, k.body, tRBrace)
	}
	g.add(ntGeometry, geometryRule(GeometryTypeGeometryCollection),
		tLBrace, tType, tColon, symbol(TokenGeometryCollection), tComma,
		ntCRSClause, ntBBoxClause,
		tGeoms, tColon, ntGeometries, tRBrace)

	g.add(ntCRSClause, (*builder).noCRS)
	g.add(ntCRSClause, pick(2), tCRS, tColon, ntCRS, tComma)
	g.add(ntCRS, pick(10),
		tLBrace, tType, tColon, tName, tComma,
		tProps, tColon, tLBrace, tName, tColon, ntSRID, tRBrace,
		tRBrace)
	g.add(ntSRID, (*builder).srid, symbol(TokenShortSRID))
	g.add(ntSRID, (*builder).srid, symbol(TokenLongSRID))

	g.add(ntBBoxClause, (*builder).noBBox)
	g.add(ntBBoxClause, pick(2), tBBox, tColon, ntBBox, tComma)
	g.add(ntBBox, (*builder).bbox,
		tLBracket, tNumber, tComma, tNumber, tComma, tNumber, tComma, tNumber, tRBracket)
	g.add(ntBBox, (*builder).bbox,
		tLBracket, tNumber, tComma, tNumber, tComma, tNumber, tComma,
		tNumber, tComma, tNumber, tComma, tNumber, tRBracket)

	g.add(ntPosition, (*builder).positionXY,
		tLBracket, tNumber, tComma, tNumber, tRBracket)
	g.add(ntPosition, (*builder).positionXYZ,
		tLBracket, tNumber, tComma, tNumber, tComma, tNumber, tRBracket)
	g.add(ntPositions, startChain[*Point], ntPosition)
	g.add(ntPositions, appendChain[*Point], ntPositions, tComma, ntPosition)

	g.add(ntLinestring, (*builder).linestring, tLBracket, ntPositions, tRBracket)
	g.add(ntRing, (*builder).ring, tLBracket, ntPositions, tRBracket)
	g.add(ntRings, startChain[*Ring], ntRing)
	g.add(ntRings, appendChain[*Ring], ntRings, tComma, ntRing)
	g.add(ntPolygon, (*builder).polygon, tLBracket, ntRings, tRBracket)

	g.add(ntMultiPoint, pick(1), tLBracket, ntPositions, tRBracket)
	g.add(ntLinestrings, startChain[*Linestring], ntLinestring)
	g.add(ntLinestrings, appendChain[*Linestring], ntLinestrings, tComma, ntLinestring)
	g.add(ntMultiLinestring, pick(1), tLBracket, ntLinestrings, tRBracket)
	g.add(ntPolygons, startChain[*Polygon], ntPolygon)
	g.add(ntPolygons, appendChain[*Polygon], ntPolygons, tComma, ntPolygon)
	g.add(ntMultiPolygon, pick(1), tLBracket, ntPolygons, tRBracket)

	for _, k := range geometryKinds {
		g.add(ntMember, memberRule(k.typ),
			tLBrace, tType, tColon, symbol(k.token), tComma,
			tCoords, tColon, k.body, tRBrace)
	}
	g.add(ntMembers, startChain[*Collection], ntMember)
	g.add(ntMembers, appendChain[*Collection], ntMembers, tComma, ntMember)
	g.add(ntGeometries, pick(1), tLBracket, ntMembers, tRBracket)

	return g
}

// pick passes the value of one right-hand side symbol through unchanged.
func pick(i int) buildFunc {
	return func(_ *builder, args []interface{}) (interface{}, error) {
		return args[i], nil
	}
}

func startChain[T any](_ *builder, args []interface{}) (interface{}, error) {
	return []T{args[0].(T)}, nil
}

func appendChain[T any](_ *builder, args []interface{}) (interface{}, error) {
	return append(args[0].([]T), args[2].(T)), nil
}
