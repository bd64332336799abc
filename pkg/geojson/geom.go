package geojson

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ToGeom converts g to its go-geom equivalent.
//
// The declared type selects the go-geom type. A GeometryCollection becomes a
// *geom.GeometryCollection holding one Point, LineString or Polygon per
// entity. The SRID is carried over when the document named one.
func ToGeom(g *Geometry) (geom.T, error) {
	if g == nil {
		return nil, fmt.Errorf("cannot convert nil geometry")
	}
	layout := g.layout()
	srid := 0
	if g.HasSRID() {
		srid = g.srid
	}

	switch g.typ {
	case GeometryTypePoint:
		if len(g.points) != 1 {
			return nil, fmt.Errorf("point has %d positions", len(g.points))
		}
		return geom.NewPointFlat(layout, g.flatten(g.points[0])).SetSRID(srid), nil

	case GeometryTypeLineString:
		if len(g.lineStrings) != 1 {
			return nil, fmt.Errorf("linestring geometry has %d linestrings", len(g.lineStrings))
		}
		return geom.NewLineStringFlat(layout, g.flatten(g.lineStrings[0]...)).SetSRID(srid), nil

	case GeometryTypePolygon:
		if len(g.polygons) != 1 {
			return nil, fmt.Errorf("polygon geometry has %d polygons", len(g.polygons))
		}
		flat, ends := g.flattenPolygon(g.polygons[0], nil)
		return geom.NewPolygonFlat(layout, flat, ends).SetSRID(srid), nil

	case GeometryTypeMultiPoint:
		return geom.NewMultiPointFlat(layout, g.flatten(g.points...)).SetSRID(srid), nil

	case GeometryTypeMultiLineString:
		var flat []float64
		var ends []int
		for _, ls := range g.lineStrings {
			flat = append(flat, g.flatten(ls...)...)
			ends = append(ends, len(flat))
		}
		return geom.NewMultiLineStringFlat(layout, flat, ends).SetSRID(srid), nil

	case GeometryTypeMultiPolygon:
		var flat []float64
		var endss [][]int
		for _, p := range g.polygons {
			var ends []int
			flat, ends = g.flattenPolygon(p, flat)
			endss = append(endss, ends)
		}
		return geom.NewMultiPolygonFlat(layout, flat, endss).SetSRID(srid), nil

	case GeometryTypeGeometryCollection:
		gc := geom.NewGeometryCollection()
		if err := gc.SetLayout(layout); err != nil {
			return nil, err
		}
		for _, p := range g.points {
			if err := gc.Push(geom.NewPointFlat(layout, g.flatten(p))); err != nil {
				return nil, err
			}
		}
		for _, ls := range g.lineStrings {
			if err := gc.Push(geom.NewLineStringFlat(layout, g.flatten(ls...))); err != nil {
				return nil, err
			}
		}
		for _, p := range g.polygons {
			flat, ends := g.flattenPolygon(p, nil)
			if err := gc.Push(geom.NewPolygonFlat(layout, flat, ends)); err != nil {
				return nil, err
			}
		}
		return gc.SetSRID(srid), nil
	}

	return nil, fmt.Errorf("cannot convert geometry type %v", g.typ)
}

// WKT returns the Well-Known Text of g.
func WKT(g *Geometry) (string, error) {
	t, err := ToGeom(g)
	if err != nil {
		return "", err
	}
	return wkt.Marshal(t)
}

func (g *Geometry) layout() geom.Layout {
	if g.dim == DimensionXYZ {
		return geom.XYZ
	}
	return geom.XY
}

func (g *Geometry) flatten(coords ...Coordinate) []float64 {
	stride := 2
	if g.dim == DimensionXYZ {
		stride = 3
	}
	flat := make([]float64, 0, len(coords)*stride)
	for _, c := range coords {
		flat = append(flat, c.X, c.Y)
		if stride == 3 {
			flat = append(flat, c.Z)
		}
	}
	return flat
}

// flattenPolygon appends the rings of p to flat. Ends are offsets into the
// returned slice.
func (g *Geometry) flattenPolygon(p Polygon, flat []float64) ([]float64, []int) {
	ends := make([]int, 0, 1+len(p.Interiors))
	flat = append(flat, g.flatten(p.Exterior...)...)
	ends = append(ends, len(flat))
	for _, hole := range p.Interiors {
		flat = append(flat, g.flatten(hole...)...)
		ends = append(ends, len(flat))
	}
	return flat, ends
}
