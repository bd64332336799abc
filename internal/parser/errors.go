package parser

import (
	"fmt"
	"strings"
)

// ErrLex indicates malformed input text: a bad number, an unterminated or
// unknown quoted string, or a stray character.
type ErrLex struct {
	Pos, Line, Col int
	Reason         string
}

func (e *ErrLex) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col, e.Reason)
}

// ErrSyntax indicates a token that is not valid in the current automaton state.
type ErrSyntax struct {
	Token    Token
	Expected []TokenType
}

func (e *ErrSyntax) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error at %d:%d: unexpected %v",
			e.Token.Line, e.Token.Col, e.Token)
	}
	names := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		names[i] = t.String()
	}
	return fmt.Sprintf("syntax error at %d:%d: unexpected %v, expected one of %s",
		e.Token.Line, e.Token.Col, e.Token, strings.Join(names, " "))
}

// ErrInvalidGeometry indicates a structurally complete geometry that breaks a
// validity rule (point counts, empty aggregate, mixed dimensions).
type ErrInvalidGeometry struct {
	Type   GeometryType
	Reason string
}

func (e *ErrInvalidGeometry) Error() string {
	if e.Type != GeometryTypeUnknown {
		return fmt.Sprintf("invalid geometry (%v): %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// ErrAllocation indicates the fragment arena refused a registration.
type ErrAllocation struct {
	Kind  FragmentKind
	Limit int
}

func (e *ErrAllocation) Error() string {
	return fmt.Sprintf("fragment limit of %d reached allocating %v", e.Limit, e.Kind)
}
