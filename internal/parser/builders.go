package parser

import "fmt"

const (
	minLinestringPoints = 2
	minRingPoints       = 4
)

// builder holds the reduction callbacks of one parse. Every fragment it
// creates is registered in the arena before it is returned, and every
// fragment it consumes is absorbed or released on the way.
type builder struct {
	arena *Arena
	// strict rejects undersized linestrings and rings as soon as they are
	// reduced. Otherwise they become empty fragments and CheckValidity
	// rejects the finished geometry.
	strict bool
	// dim is fixed by the first position of the document.
	dim Dimension
}

func newBuilder(arena *Arena, strict bool) *builder {
	return &builder{arena: arena, strict: strict}
}

func num(v interface{}) float64 {
	return v.(Token).Value
}

func (b *builder) noteDim(d Dimension) error {
	if b.dim == DimUnknown {
		b.dim = d
		return nil
	}
	if b.dim != d {
		return &ErrInvalidGeometry{Reason: fmt.Sprintf("%v position in %v geometry", d, b.dim)}
	}
	return nil
}

func (b *builder) positionXY(args []interface{}) (interface{}, error) {
	return b.newPoint(num(args[1]), num(args[3]), 0, DimXY)
}

func (b *builder) positionXYZ(args []interface{}) (interface{}, error) {
	return b.newPoint(num(args[1]), num(args[3]), num(args[5]), DimXYZ)
}

func (b *builder) newPoint(x, y, z float64, dim Dimension) (*Point, error) {
	if err := b.noteDim(dim); err != nil {
		return nil, err
	}
	p := getPoint()
	*p = Point{X: x, Y: y, Z: z, Dim: dim}
	if err := b.arena.Register(KindPoint, p); err != nil {
		putPoint(p)
		return nil, err
	}
	return p, nil
}

// takeCoords copies the positions of a point chain and releases the points.
func (b *builder) takeCoords(points []*Point) []Coord {
	coords := make([]Coord, len(points))
	for i, p := range points {
		coords[i] = p.Coord()
	}
	b.releasePoints(points)
	return coords
}

func (b *builder) releasePoints(points []*Point) {
	for _, p := range points {
		b.arena.Release(p)
	}
}

func (b *builder) linestring(args []interface{}) (interface{}, error) {
	points := args[1].([]*Point)
	if len(points) < minLinestringPoints && b.strict {
		return nil, &ErrInvalidGeometry{
			Type:   GeometryTypeLineString,
			Reason: fmt.Sprintf("linestring has %d points, need at least %d", len(points), minLinestringPoints),
		}
	}
	ls := &Linestring{Dim: b.dim}
	if err := b.arena.Register(KindLinestring, ls); err != nil {
		return nil, err
	}
	if len(points) < minLinestringPoints {
		b.releasePoints(points)
		return ls, nil
	}
	ls.Coords = b.takeCoords(points)
	return ls, nil
}

func (b *builder) ring(args []interface{}) (interface{}, error) {
	points := args[1].([]*Point)
	if len(points) < minRingPoints && b.strict {
		return nil, &ErrInvalidGeometry{
			Type:   GeometryTypePolygon,
			Reason: fmt.Sprintf("ring has %d points, need at least %d", len(points), minRingPoints),
		}
	}
	r := &Ring{Dim: b.dim}
	if err := b.arena.Register(KindRing, r); err != nil {
		return nil, err
	}
	if len(points) < minRingPoints {
		b.releasePoints(points)
		return r, nil
	}
	r.Coords = b.takeCoords(points)
	return r, nil
}

// polygon takes the first ring as exterior and the rest as holes.
func (b *builder) polygon(args []interface{}) (interface{}, error) {
	rings := args[1].([]*Ring)
	p := &Polygon{
		Exterior:  rings[0],
		Interiors: append([]*Ring(nil), rings[1:]...),
	}
	if err := b.arena.Register(KindPolygon, p); err != nil {
		return nil, err
	}
	for i, r := range rings {
		r.Interior = i > 0
		b.arena.Absorb(r)
	}
	return p, nil
}

func (b *builder) noCRS(args []interface{}) (interface{}, error) {
	return SRIDUnset, nil
}

func (b *builder) srid(args []interface{}) (interface{}, error) {
	return args[0].(Token).SRID, nil
}

func (b *builder) noBBox(args []interface{}) (interface{}, error) {
	return nil, nil
}

// bbox collects the numbers of a bbox array, skipping the punctuation.
func (b *builder) bbox(args []interface{}) (interface{}, error) {
	box := make([]float64, 0, len(args)/2)
	for i := 1; i < len(args); i += 2 {
		box = append(box, num(args[i]))
	}
	return box, nil
}

// geometryRule builds a top-level geometry:
// { "type" : KIND , crs_clause bbox_clause "coordinates" : body }
func geometryRule(t GeometryType) buildFunc {
	return func(b *builder, args []interface{}) (interface{}, error) {
		c, err := b.newGeometry(t, args[9])
		if err != nil {
			return nil, err
		}
		if srid, ok := args[5].(int); ok {
			c.SRID = srid
		}
		if box, ok := args[6].([]float64); ok {
			c.DeclaredBBox = box
		}
		return c, nil
	}
}

// memberRule builds a GeometryCollection member:
// { "type" : KIND , "coordinates" : body }
func memberRule(t GeometryType) buildFunc {
	return func(b *builder, args []interface{}) (interface{}, error) {
		return b.newGeometry(t, args[7])
	}
}

// newGeometry wraps the value of a coordinates or geometries member into a
// Collection, taking ownership of the fragments it holds.
func (b *builder) newGeometry(t GeometryType, body interface{}) (*Collection, error) {
	c := &Collection{Type: t, Dim: b.dim, SRID: SRIDUnset}
	if err := b.arena.Register(KindGeometry, c); err != nil {
		return nil, err
	}

	switch v := body.(type) {
	case *Point:
		c.Points = []*Point{v}
		b.arena.Absorb(v)
	case []*Point:
		c.Points = v
		for _, p := range v {
			b.arena.Absorb(p)
		}
	case *Linestring:
		c.Linestrings = []*Linestring{v}
		b.arena.Absorb(v)
	case []*Linestring:
		c.Linestrings = v
		for _, ls := range v {
			b.arena.Absorb(ls)
		}
	case *Polygon:
		c.Polygons = []*Polygon{v}
		b.arena.Absorb(v)
	case []*Polygon:
		c.Polygons = v
		for _, p := range v {
			b.arena.Absorb(p)
		}
	case []*Collection:
		for _, m := range v {
			c.Points = append(c.Points, m.Points...)
			c.Linestrings = append(c.Linestrings, m.Linestrings...)
			c.Polygons = append(c.Polygons, m.Polygons...)
			m.Points, m.Linestrings, m.Polygons = nil, nil, nil
			b.arena.Release(m)
		}
	default:
		return nil, fmt.Errorf("unexpected %T in %v body", body, t)
	}
	return c, nil
}
