package geojson

import (
	"errors"
	"fmt"
	"io"

	"github.com/beetlebugorg/geojson/internal/parser"
)

// ErrInvalidGeometry is wrapped by every parse failure: malformed text,
// unsupported members, undersized linestrings or rings, and resource limits
// all report it. The wrapped message carries the cause.
//
// Example:
//
//	g, err := geojson.ParseString(text)
//	if errors.Is(err, geojson.ErrInvalidGeometry) {
//		// reject the input
//	}
var ErrInvalidGeometry = errors.New("invalid geometry")

// Parser parses GeoJSON geometry documents.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read
// documents. A Parser holds no per-document state and is safe for concurrent
// use.
type Parser interface {
	// Parse reads a single GeoJSON geometry object.
	//
	// Point, LineString, Polygon, MultiPoint, MultiLineString, MultiPolygon
	// and GeometryCollection are accepted, in 2D or 3D, with optional "crs"
	// and "bbox" members. Members must appear in the order
	// type, crs, bbox, coordinates (or geometries).
	Parse(data []byte) (*Geometry, error)

	// ParseWithOptions parses a document with custom options.
	ParseWithOptions(data []byte, opts ParseOptions) (*Geometry, error)
}

// NewParser creates a new GeoJSON parser with default settings.
//
// Example:
//
//	parser := geojson.NewParser()
//	g, err := parser.Parse([]byte(`{"type":"Point","coordinates":[1,2]}`))
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and converts types
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) Parse(data []byte) (*Geometry, error) {
	return p.ParseWithOptions(data, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(data []byte, opts ParseOptions) (*Geometry, error) {
	internalOpts := parser.ParseOptions{
		Strict:            opts.Strict,
		MaxFragments:      opts.MaxFragments,
		CheckDeclaredBBox: opts.CheckBBox,
		Trace:             opts.Trace,
		TracePrompt:       opts.TracePrompt,
	}
	c, err := p.internal.ParseWithOptions(data, internalOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	return convertCollection(c), nil
}

var defaultParser = NewParser()

// ParseString parses a GeoJSON geometry with default options.
func ParseString(text string) (*Geometry, error) {
	return defaultParser.Parse([]byte(text))
}

// ParseReader reads r to the end and parses its contents.
func ParseReader(r io.Reader, opts ParseOptions) (*Geometry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return defaultParser.ParseWithOptions(data, opts)
}
