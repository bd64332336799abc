package geojson

import (
	"github.com/beetlebugorg/geojson/internal/parser"
)

// SRIDUnset is returned by Geometry.SRID when the document has no "crs" member.
const SRIDUnset = parser.SRIDUnset

// GeometryType represents the declared GeoJSON type of a document.
type GeometryType int

const (
	GeometryTypeUnknown GeometryType = iota
	GeometryTypePoint
	GeometryTypeLineString
	GeometryTypePolygon
	GeometryTypeMultiPoint
	GeometryTypeMultiLineString
	GeometryTypeMultiPolygon
	GeometryTypeGeometryCollection
)

// String returns the GeoJSON name of the geometry type.
func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeMultiPoint:
		return "MultiPoint"
	case GeometryTypeMultiLineString:
		return "MultiLineString"
	case GeometryTypeMultiPolygon:
		return "MultiPolygon"
	case GeometryTypeGeometryCollection:
		return "GeometryCollection"
	default:
		return "Unknown"
	}
}

// Dimension indicates whether positions carry an elevation.
type Dimension int

const (
	DimensionXY Dimension = iota + 1
	DimensionXYZ
)

// String returns "XY" or "XYZ".
func (d Dimension) String() string {
	switch d {
	case DimensionXY:
		return "XY"
	case DimensionXYZ:
		return "XYZ"
	default:
		return "Unknown"
	}
}

// Coordinate is a single position. Z is zero for XY geometries.
type Coordinate struct {
	X, Y, Z float64
}

// LineString is an ordered sequence of at least two positions.
type LineString []Coordinate

// Ring is a polygon boundary of at least four positions.
//
// Ring closure is not checked: a four-position ring whose last position
// differs from its first is accepted as-is.
type Ring []Coordinate

// Polygon is an exterior ring with zero or more holes.
type Polygon struct {
	Exterior  Ring
	Interiors []Ring
}

// Geometry is a successfully parsed GeoJSON geometry.
//
// Every entity in the document lands in one of three flat lists regardless of
// nesting: a MultiPoint contributes to Points, a GeometryCollection holding a
// MultiPolygon contributes to Polygons, and so on. Type reports what the
// document declared.
//
// All fields are private to maintain encapsulation.
type Geometry struct {
	typ         GeometryType
	dim         Dimension
	srid        int
	points      []Coordinate
	lineStrings []LineString
	polygons    []Polygon
	bounds      Bounds
	minZ, maxZ  float64
	declared    []float64
}

// Type returns the declared geometry type.
func (g *Geometry) Type() GeometryType { return g.typ }

// Dimension returns the coordinate model shared by every position.
func (g *Geometry) Dimension() Dimension { return g.dim }

// SRID returns the spatial reference id named by the "crs" member, or
// SRIDUnset.
func (g *Geometry) SRID() int { return g.srid }

// HasSRID reports whether the document carried a "crs" member.
func (g *Geometry) HasSRID() bool { return g.srid != SRIDUnset }

// Points returns every point of the geometry.
func (g *Geometry) Points() []Coordinate { return g.points }

// LineStrings returns every linestring of the geometry.
func (g *Geometry) LineStrings() []LineString { return g.lineStrings }

// Polygons returns every polygon of the geometry.
func (g *Geometry) Polygons() []Polygon { return g.polygons }

// Bounds returns the minimum bounding rectangle computed from the positions.
func (g *Geometry) Bounds() Bounds { return g.bounds }

// ZRange returns the elevation range. It is (0, 0) for XY geometries.
func (g *Geometry) ZRange() (min, max float64) { return g.minZ, g.maxZ }

// DeclaredBBox returns the document's "bbox" member: 4 numbers for
// [minx, miny, maxx, maxy], 6 for [minx, miny, minz, maxx, maxy, maxz], or
// nil when absent.
func (g *Geometry) DeclaredBBox() []float64 { return g.declared }

// EntityCount returns the number of points, linestrings and polygons.
func (g *Geometry) EntityCount() int {
	return len(g.points) + len(g.lineStrings) + len(g.polygons)
}

// convertCollection converts the internal aggregate to the public API geometry
func convertCollection(c *parser.Collection) *Geometry {
	g := &Geometry{
		typ:  GeometryType(c.Type),
		dim:  Dimension(c.Dim),
		srid: c.SRID,
		bounds: Bounds{
			MinX: c.MinX, MinY: c.MinY,
			MaxX: c.MaxX, MaxY: c.MaxY,
		},
		minZ:     c.MinZ,
		maxZ:     c.MaxZ,
		declared: c.DeclaredBBox,
	}

	g.points = make([]Coordinate, len(c.Points))
	for i, p := range c.Points {
		g.points[i] = Coordinate{X: p.X, Y: p.Y, Z: p.Z}
	}

	g.lineStrings = make([]LineString, len(c.Linestrings))
	for i, ls := range c.Linestrings {
		g.lineStrings[i] = convertCoords(ls.Coords)
	}

	g.polygons = make([]Polygon, len(c.Polygons))
	for i, p := range c.Polygons {
		poly := Polygon{Exterior: Ring(convertCoords(p.Exterior.Coords))}
		for _, hole := range p.Interiors {
			poly.Interiors = append(poly.Interiors, Ring(convertCoords(hole.Coords)))
		}
		g.polygons[i] = poly
	}
	return g
}

func convertCoords(coords []parser.Coord) []Coordinate {
	out := make([]Coordinate, len(coords))
	for i, c := range coords {
		out[i] = Coordinate{X: c.X, Y: c.Y, Z: c.Z}
	}
	return out
}
