package parser

import "fmt"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota

	// Structural punctuation
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenColon

	TokenNumber

	// Quoted member keys
	TokenKeyType
	TokenKeyCoordinates
	TokenKeyGeometries
	TokenKeyBBox
	TokenKeyCRS
	TokenKeyName
	TokenKeyProperties

	// Quoted geometry type names
	TokenPoint
	TokenLineString
	TokenPolygon
	TokenMultiPoint
	TokenMultiLineString
	TokenMultiPolygon
	TokenGeometryCollection

	// Quoted CRS names: "EPSG:4326" and "urn:ogc:def:crs:EPSG::4326"
	TokenShortSRID
	TokenLongSRID

	numTokenTypes
)

var tokenNames = [...]string{
	TokenEOF:                "EOF",
	TokenLBrace:             "'{'",
	TokenRBrace:             "'}'",
	TokenLBracket:           "'['",
	TokenRBracket:           "']'",
	TokenComma:              "','",
	TokenColon:              "':'",
	TokenNumber:             "NUMBER",
	TokenKeyType:            `"type"`,
	TokenKeyCoordinates:     `"coordinates"`,
	TokenKeyGeometries:      `"geometries"`,
	TokenKeyBBox:            `"bbox"`,
	TokenKeyCRS:             `"crs"`,
	TokenKeyName:            `"name"`,
	TokenKeyProperties:      `"properties"`,
	TokenPoint:              `"Point"`,
	TokenLineString:         `"LineString"`,
	TokenPolygon:            `"Polygon"`,
	TokenMultiPoint:         `"MultiPoint"`,
	TokenMultiLineString:    `"MultiLineString"`,
	TokenMultiPolygon:       `"MultiPolygon"`,
	TokenGeometryCollection: `"GeometryCollection"`,
	TokenShortSRID:          "SHORT_SRID",
	TokenLongSRID:           "LONG_SRID",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit.
type Token struct {
	Type TokenType
	// Value holds the numeric payload of a TokenNumber.
	Value float64
	// SRID holds the code named by a TokenShortSRID or TokenLongSRID.
	SRID int
	// Pos is the byte offset of the token in the input.
	Pos  int
	Line int
	Col  int
}

func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return fmt.Sprintf("%v(%g)", t.Type, t.Value)
	case TokenShortSRID, TokenLongSRID:
		return fmt.Sprintf("%v(%d)", t.Type, t.SRID)
	}
	return t.Type.String()
}

// keywords maps the contents of a quoted string to its token type.
var keywords = map[string]TokenType{
	"type":               TokenKeyType,
	"coordinates":        TokenKeyCoordinates,
	"geometries":         TokenKeyGeometries,
	"bbox":               TokenKeyBBox,
	"crs":                TokenKeyCRS,
	"name":               TokenKeyName,
	"properties":         TokenKeyProperties,
	"Point":              TokenPoint,
	"LineString":         TokenLineString,
	"Polygon":            TokenPolygon,
	"MultiPoint":         TokenMultiPoint,
	"MultiLineString":    TokenMultiLineString,
	"MultiPolygon":       TokenMultiPolygon,
	"GeometryCollection": TokenGeometryCollection,
}
