package parser

import (
	"fmt"
	"io"
)

// Parser parses GeoJSON geometry documents.
//
// A document is a single Point, LineString, Polygon, MultiPoint,
// MultiLineString, MultiPolygon or GeometryCollection object, optionally
// carrying a "crs" member (short "EPSG:n" or long URN name form) and a "bbox"
// member, in 2D or 3D. Features and FeatureCollections are not geometries and
// are rejected.
type Parser interface {
	// Parse parses a document with DefaultParseOptions.
	Parse(data []byte) (*Collection, error)

	// ParseWithOptions parses with custom options
	ParseWithOptions(data []byte, opts ParseOptions) (*Collection, error)
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// Strict: if true, a linestring with fewer than 2 points or a ring with
	// fewer than 4 points fails the parse when it is reduced. If false, it
	// becomes an empty fragment and the finished geometry is rejected by
	// CheckValidity.
	// Default: true
	Strict bool

	// MaxFragments limits the number of fragments alive at once during a
	// parse. Zero means no limit.
	MaxFragments int

	// CheckDeclaredBBox: if true, a "bbox" member must enclose the computed MBR.
	// Default: false
	CheckDeclaredBBox bool

	// Trace, if non-nil, receives one line per automaton step and state change.
	Trace io.Writer

	// TracePrompt prefixes every trace line.
	TracePrompt string

	// observe receives arena events. Tests use it to check exactly-once release.
	observe func(ev arenaEvent, kind FragmentKind, handle interface{})
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Strict:            true,
		MaxFragments:      0,
		CheckDeclaredBBox: false,
		Trace:             nil,
		TracePrompt:       "",
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new GeoJSON parser
func NewParser() Parser {
	return &defaultParser{}
}

// Parse parses a document with default options
func (p *defaultParser) Parse(data []byte) (*Collection, error) {
	return p.ParseWithOptions(data, DefaultParseOptions())
}

// ParseWithOptions parses with custom options
func (p *defaultParser) ParseWithOptions(data []byte, opts ParseOptions) (*Collection, error) {
	c, _, err := ParseDetailed(data, opts)
	return c, err
}

// driverState is the lifecycle of one parse.
type driverState int

const (
	stateInit driverState = iota
	stateLexing
	stateAccepted
	stateValidated
	stateFailed
)

func (s driverState) String() string {
	switch s {
	case stateInit:
		return "INIT"
	case stateLexing:
		return "LEXING"
	case stateAccepted:
		return "ACCEPTED"
	case stateValidated:
		return "VALIDATED"
	case stateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("driverState(%d)", int(s))
	}
}

// run holds the state of a single parse.
type run struct {
	opts  ParseOptions
	state driverState
	arena *Arena
	auto  *automaton
}

func (r *run) enter(s driverState) {
	if r.state == s {
		return
	}
	if r.opts.Trace != nil {
		fmt.Fprintf(r.opts.Trace, "%s%v -> %v\n", r.opts.TracePrompt, r.state, s)
	}
	r.state = s
}

// fail sweeps the arena, releasing every fragment still registered.
func (r *run) fail(err error) error {
	r.enter(stateFailed)
	r.arena.Sweep(true)
	return err
}

// ParseDetailed parses data and also returns the arena counters of the parse.
// On success the returned Collection owns every fragment that was not
// absorbed; on failure every fragment has been released and the Collection
// is nil.
func ParseDetailed(data []byte, opts ParseOptions) (*Collection, ArenaStats, error) {
	r := &run{
		opts:  opts,
		state: stateInit,
		arena: NewArena(opts.MaxFragments),
	}
	r.arena.observe = opts.observe
	r.auto = newAutomaton(geoJSONTables, newBuilder(r.arena, opts.Strict))
	r.auto.setTrace(opts.Trace, opts.TracePrompt)

	c, err := r.parse(data)
	return c, r.arena.Stats(), err
}

func (r *run) parse(data []byte) (*Collection, error) {
	lx := NewLexer(data)
	for !r.auto.Accepted() {
		tok, err := lx.Next()
		if err != nil {
			return nil, r.fail(err)
		}
		r.enter(stateLexing)
		if err := r.auto.Feed(tok); err != nil {
			return nil, r.fail(err)
		}
	}
	r.enter(stateAccepted)

	c, ok := r.auto.Result().(*Collection)
	if !ok {
		return nil, r.fail(fmt.Errorf("parser accepted %T", r.auto.Result()))
	}
	if err := CheckValidity(c); err != nil {
		return nil, r.fail(err)
	}
	if r.opts.CheckDeclaredBBox {
		if err := CheckDeclaredBBox(c); err != nil {
			return nil, r.fail(err)
		}
	}

	r.enter(stateValidated)
	r.arena.Sweep(false)
	return c, nil
}
