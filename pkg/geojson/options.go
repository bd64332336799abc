package geojson

import (
	"io"
	"runtime"
)

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// Strict rejects a linestring with fewer than 2 positions or a ring with
	// fewer than 4 as soon as it is read. When false the document is read to
	// the end and rejected afterwards. The outcome is the same either way;
	// strict mode fails earlier.
	// Default: true
	Strict bool

	// MaxFragments caps the number of intermediate objects alive at once
	// while a document is parsed. Documents that need more fail with
	// ErrInvalidGeometry. Zero means no limit.
	MaxFragments int

	// CheckBBox requires a "bbox" member, when present, to enclose every
	// position of the geometry.
	// Default: false
	CheckBBox bool

	// Trace, if non-nil, receives a line for every parser step.
	Trace io.Writer

	// TracePrompt prefixes every trace line.
	TracePrompt string
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Strict:       true,
		MaxFragments: 0,
		CheckBBox:    false,
	}
}

// LoadOptions controls parallel parsing behavior and error handling.
type LoadOptions struct {
	// Parallel enables concurrent parsing.
	// When true, documents are parsed using multiple worker goroutines.
	Parallel bool

	// Workers specifies the number of parallel goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes parsing to continue even when individual documents fail.
	// Failed documents are skipped and errors are collected.
	// When false, the first error stops parsing and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback for tracking progress.
	// Called after each document is parsed (successfully or with error).
	Progress func(done, total int)

	// ErrorLog is an optional writer for detailed error reporting.
	// Each error is written here with the document name and error details.
	ErrorLog io.Writer

	// Parse is passed to every parse.
	Parse ParseOptions
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Progress:   nil,
		ErrorLog:   nil,
		Parse:      DefaultParseOptions(),
	}
}

// CRSForm selects how Encode writes the "crs" member.
type CRSForm int

const (
	// CRSNone omits the "crs" member.
	CRSNone CRSForm = iota
	// CRSShort writes "EPSG:<srid>".
	CRSShort
	// CRSLong writes "urn:ogc:def:crs:EPSG:<srid>".
	CRSLong
)

// EncodeOptions configures Encode.
type EncodeOptions struct {
	// Precision is the maximum number of decimal digits. Trailing zeros are
	// dropped. A negative precision writes the shortest text that parses
	// back to the same float64.
	// Default: 15
	Precision int

	// CRS selects the "crs" member form. Geometries without an SRID never
	// get one.
	CRS CRSForm

	// BBox writes a "bbox" member computed from the positions.
	BBox bool
}

// DefaultEncodeOptions returns default options.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Precision: 15,
		CRS:       CRSNone,
		BBox:      false,
	}
}
