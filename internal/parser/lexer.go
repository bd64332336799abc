package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	shortSRIDPrefix = "EPSG:"
	longSRIDPrefix  = "urn:ogc:def:crs:EPSG:"
	crs84Name       = "urn:ogc:def:crs:OGC:1.3:CRS84"
)

// Lexer tokenizes GeoJSON geometry text into a stream of tokens.
type Lexer struct {
	data []byte
	pos  int
	size int
	line int
	col  int
}

// NewLexer creates a new lexer from a byte slice.
func NewLexer(data []byte) *Lexer {
	return &Lexer{
		data: data,
		size: len(data),
		line: 1,
		col:  1,
	}
}

// NewLexerFromReader creates a new lexer by reading all data from a reader.
func NewLexerFromReader(r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewLexer(data), nil
}

// Position returns the current byte position.
func (l *Lexer) Position() int {
	return l.pos
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= l.size {
		return 0, false
	}
	return l.data[l.pos], true
}

func (l *Lexer) advance() byte {
	if l.pos >= l.size {
		return 0
	}
	b := l.data[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *Lexer) skipWhitespace() {
	for l.pos < l.size {
		switch l.data[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) errorf(pos, line, col int, format string, args ...interface{}) error {
	return &ErrLex{Pos: pos, Line: line, Col: col, Reason: fmt.Sprintf(format, args...)}
}

// Next returns the next token. At end of input it returns TokenEOF, and keeps
// returning it on further calls.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	tok := Token{Pos: l.pos, Line: l.line, Col: l.col}
	b, ok := l.peek()
	if !ok {
		tok.Type = TokenEOF
		return tok, nil
	}

	switch b {
	case '{':
		tok.Type = TokenLBrace
	case '}':
		tok.Type = TokenRBrace
	case '[':
		tok.Type = TokenLBracket
	case ']':
		tok.Type = TokenRBracket
	case ',':
		tok.Type = TokenComma
	case ':':
		tok.Type = TokenColon
	case '"':
		return l.lexString(tok)
	default:
		if b == '-' || isDigit(b) {
			return l.lexNumber(tok)
		}
		return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "unexpected character %q", b)
	}
	l.advance()
	return tok, nil
}

func (l *Lexer) lexString(tok Token) (Token, error) {
	l.advance() // opening quote
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "unterminated string")
		}
		if b == '"' {
			break
		}
		l.advance()
	}
	text := string(l.data[start:l.pos])
	l.advance() // closing quote

	if t, ok := keywords[text]; ok {
		tok.Type = t
		return tok, nil
	}
	if srid, ok := parseShortSRID(text); ok {
		tok.Type = TokenShortSRID
		tok.SRID = srid
		return tok, nil
	}
	if srid, ok := parseLongSRID(text); ok {
		tok.Type = TokenLongSRID
		tok.SRID = srid
		return tok, nil
	}
	return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "unexpected string %q", text)
}

// lexNumber scans -?digits(.digits)?([eE][+-]?digits)?
func (l *Lexer) lexNumber(tok Token) (Token, error) {
	start := l.pos
	if b, _ := l.peek(); b == '-' {
		l.advance()
	}
	if !l.digits() {
		return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "malformed number %q", l.data[start:l.pos])
	}
	if b, _ := l.peek(); b == '.' {
		l.advance()
		if !l.digits() {
			return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "malformed number %q", l.data[start:l.pos])
		}
	}
	if b, _ := l.peek(); b == 'e' || b == 'E' {
		l.advance()
		if b, _ := l.peek(); b == '+' || b == '-' {
			l.advance()
		}
		if !l.digits() {
			return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "malformed number %q", l.data[start:l.pos])
		}
	}
	// A number glued to a letter or another sign is not a number.
	if b, ok := l.peek(); ok && (isLetter(b) || b == '.' || b == '-' || b == '+') {
		return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "malformed number %q", l.data[start:l.pos+1])
	}

	v, err := strconv.ParseFloat(string(l.data[start:l.pos]), 64)
	if err != nil {
		return tok, l.errorf(tok.Pos, tok.Line, tok.Col, "malformed number: %v", err)
	}
	tok.Type = TokenNumber
	tok.Value = v
	return tok, nil
}

func (l *Lexer) digits() bool {
	n := 0
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			return n > 0
		}
		l.advance()
		n++
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

// parseShortSRID accepts "EPSG:<code>".
func parseShortSRID(s string) (int, bool) {
	if !strings.HasPrefix(s, shortSRIDPrefix) {
		return 0, false
	}
	return parseCode(s[len(shortSRIDPrefix):])
}

// parseLongSRID accepts "urn:ogc:def:crs:EPSG:<code>",
// "urn:ogc:def:crs:EPSG::<code>" and "urn:ogc:def:crs:EPSG:<version>:<code>".
// The OGC CRS84 URN is WGS84 longitude/latitude and maps to 4326.
func parseLongSRID(s string) (int, bool) {
	if s == crs84Name {
		return 4326, true
	}
	if !strings.HasPrefix(s, longSRIDPrefix) {
		return 0, false
	}
	rest := s[len(longSRIDPrefix):]
	if i := strings.LastIndexByte(rest, ':'); i >= 0 {
		version := rest[:i]
		if strings.ContainsRune(version, ':') {
			return 0, false
		}
		rest = rest[i+1:]
	}
	return parseCode(rest)
}

func parseCode(s string) (int, bool) {
	if s == "" || !isAllDigits([]byte(s)) {
		return 0, false
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return code, true
}

func isAllDigits(b []byte) bool {
	return len(bytes.TrimLeft(b, "0123456789")) == 0
}

// Tokenize lexes the whole input, including the trailing TokenEOF.
func Tokenize(data []byte) ([]Token, error) {
	l := NewLexer(data)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks, nil
		}
	}
}
