package parser

import (
	"fmt"
	"sync"
)

// SRIDUnset is the spatial reference id of a geometry without a "crs" member.
const SRIDUnset = -1

// GeometryType is the declared GeoJSON type of a parsed document.
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

func (t GeometryType) String() string {
	switch t {
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
		return fmt.Sprintf("GeometryType(%d)", int(t))
	}
}

// Dimension is the coordinate model of a geometry.
type Dimension int

const (
	DimUnknown Dimension = iota
	DimXY
	DimXYZ
)

func (d Dimension) String() string {
	switch d {
	case DimXY:
		return "XY"
	case DimXYZ:
		return "XYZ"
	default:
		return "Unknown"
	}
}

// Coord is a single position. Z is zero for XY geometries.
type Coord struct {
	X, Y, Z float64
}

// Point is a single position together with its coordinate model.
type Point struct {
	X, Y, Z float64
	Dim     Dimension
}

// Coord returns the point's position.
func (p *Point) Coord() Coord {
	return Coord{X: p.X, Y: p.Y, Z: p.Z}
}

// Linestring is an ordered sequence of at least two positions.
type Linestring struct {
	Dim    Dimension
	Coords []Coord
}

// Ring is a polygon boundary of at least four positions. Closure is not
// checked.
type Ring struct {
	Dim      Dimension
	Coords   []Coord
	Interior bool
}

// Polygon is an exterior ring plus zero or more interior rings.
type Polygon struct {
	Exterior  *Ring
	Interiors []*Ring
}

// Rings returns the exterior ring followed by the interior rings.
func (p *Polygon) Rings() []*Ring {
	rings := make([]*Ring, 0, 1+len(p.Interiors))
	if p.Exterior != nil {
		rings = append(rings, p.Exterior)
	}
	return append(rings, p.Interiors...)
}

// Collection is the aggregate produced by a successful parse. Every entity of
// the document lands in one of the three flat lists regardless of nesting:
// a MultiPolygon member of a GeometryCollection contributes its polygons to
// Polygons.
type Collection struct {
	Type GeometryType
	Dim  Dimension
	SRID int

	Points      []*Point
	Linestrings []*Linestring
	Polygons    []*Polygon

	// MBR, computed by CheckValidity.
	MinX, MinY, MaxX, MaxY float64
	// Z range, computed by CheckValidity for XYZ geometries.
	MinZ, MaxZ float64

	// DeclaredBBox is the document's "bbox" member: 4 or 6 numbers, or nil.
	DeclaredBBox []float64
}

// Entities returns the number of points, linestrings and polygons.
func (c *Collection) Entities() int {
	return len(c.Points) + len(c.Linestrings) + len(c.Polygons)
}

// release drops everything the collection holds. Points go back to the pool.
func (c *Collection) release() {
	for _, p := range c.Points {
		putPoint(p)
	}
	c.Points = nil
	c.Linestrings = nil
	c.Polygons = nil
	c.DeclaredBBox = nil
}

var pointPool = sync.Pool{
	New: func() interface{} {
		return new(Point)
	},
}

func getPoint() *Point {
	return pointPool.Get().(*Point)
}

func putPoint(p *Point) {
	*p = Point{}
	pointPool.Put(p)
}
