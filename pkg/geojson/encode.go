package geojson

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxPrecision bounds EncodeOptions.Precision.
const maxPrecision = 18

// Encode returns the GeoJSON text of g.
//
// Members are written in the order the parser requires (type, crs, bbox,
// coordinates), so the output of Encode is always accepted by Parse. A
// GeometryCollection is written with one member per point, linestring and
// polygon.
func Encode(g *Geometry, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, g, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the GeoJSON text of g to w.
func EncodeTo(w io.Writer, g *Geometry, opts EncodeOptions) error {
	if g == nil {
		return fmt.Errorf("cannot encode nil geometry")
	}
	if g.EntityCount() == 0 {
		return fmt.Errorf("cannot encode empty %v", g.typ)
	}

	e := &encoder{g: g, prec: opts.Precision}
	if e.prec > maxPrecision {
		e.prec = maxPrecision
	}

	e.header(g.typ.String())
	e.crs(opts.CRS)
	if opts.BBox {
		e.bbox()
	}

	switch g.typ {
	case GeometryTypePoint:
		e.buf.WriteString(`,"coordinates":`)
		e.position(g.points[0])
	case GeometryTypeLineString:
		e.buf.WriteString(`,"coordinates":`)
		e.positions(g.lineStrings[0])
	case GeometryTypePolygon:
		e.buf.WriteString(`,"coordinates":`)
		e.polygon(g.polygons[0])
	case GeometryTypeMultiPoint:
		e.buf.WriteString(`,"coordinates":[`)
		for i, p := range g.points {
			e.sep(i)
			e.position(p)
		}
		e.buf.WriteByte(']')
	case GeometryTypeMultiLineString:
		e.buf.WriteString(`,"coordinates":[`)
		for i, ls := range g.lineStrings {
			e.sep(i)
			e.positions(ls)
		}
		e.buf.WriteByte(']')
	case GeometryTypeMultiPolygon:
		e.buf.WriteString(`,"coordinates":[`)
		for i, p := range g.polygons {
			e.sep(i)
			e.polygon(p)
		}
		e.buf.WriteByte(']')
	case GeometryTypeGeometryCollection:
		e.buf.WriteString(`,"geometries":[`)
		n := 0
		for _, p := range g.points {
			e.sep(n)
			e.buf.WriteString(`{"type":"Point","coordinates":`)
			e.position(p)
			e.buf.WriteByte('}')
			n++
		}
		for _, ls := range g.lineStrings {
			e.sep(n)
			e.buf.WriteString(`{"type":"LineString","coordinates":`)
			e.positions(ls)
			e.buf.WriteByte('}')
			n++
		}
		for _, p := range g.polygons {
			e.sep(n)
			e.buf.WriteString(`{"type":"Polygon","coordinates":`)
			e.polygon(p)
			e.buf.WriteByte('}')
			n++
		}
		e.buf.WriteByte(']')
	default:
		return fmt.Errorf("cannot encode geometry type %v", g.typ)
	}
	e.buf.WriteByte('}')

	if e.err != nil {
		return e.err
	}
	_, err := w.Write(e.buf.Bytes())
	return err
}

type encoder struct {
	g    *Geometry
	prec int
	buf  bytes.Buffer
	err  error
}

func (e *encoder) header(typ string) {
	e.buf.WriteString(`{"type":"`)
	e.buf.WriteString(typ)
	e.buf.WriteByte('"')
}

func (e *encoder) crs(form CRSForm) {
	if !e.g.HasSRID() || e.g.srid <= 0 {
		return
	}
	switch form {
	case CRSShort:
		fmt.Fprintf(&e.buf, `,"crs":{"type":"name","properties":{"name":"EPSG:%d"}}`, e.g.srid)
	case CRSLong:
		fmt.Fprintf(&e.buf, `,"crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG:%d"}}`, e.g.srid)
	}
}

// bbox writes the computed bounds: four numbers for XY, six for XYZ.
func (e *encoder) bbox() {
	b := e.g.bounds
	e.buf.WriteString(`,"bbox":[`)
	if e.g.dim == DimensionXYZ {
		e.numbers(b.MinX, b.MinY, e.g.minZ, b.MaxX, b.MaxY, e.g.maxZ)
	} else {
		e.numbers(b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
	e.buf.WriteByte(']')
}

func (e *encoder) position(c Coordinate) {
	e.buf.WriteByte('[')
	if e.g.dim == DimensionXYZ {
		e.numbers(c.X, c.Y, c.Z)
	} else {
		e.numbers(c.X, c.Y)
	}
	e.buf.WriteByte(']')
}

func (e *encoder) positions(coords []Coordinate) {
	e.buf.WriteByte('[')
	for i, c := range coords {
		e.sep(i)
		e.position(c)
	}
	e.buf.WriteByte(']')
}

func (e *encoder) polygon(p Polygon) {
	e.buf.WriteByte('[')
	e.positions(p.Exterior)
	for _, hole := range p.Interiors {
		e.buf.WriteByte(',')
		e.positions(hole)
	}
	e.buf.WriteByte(']')
}

func (e *encoder) numbers(vals ...float64) {
	for i, v := range vals {
		e.sep(i)
		s, err := formatNumber(v, e.prec)
		if err != nil && e.err == nil {
			e.err = err
		}
		e.buf.WriteString(s)
	}
}

func (e *encoder) sep(i int) {
	if i > 0 {
		e.buf.WriteByte(',')
	}
}

// formatNumber formats v with at most prec decimals, dropping trailing zeros
// and the sign of a negative zero.
func formatNumber(v float64, prec int) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0", fmt.Errorf("cannot encode non-finite number %v", v)
	}
	if prec < 0 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if s == "-0" {
			s = "0"
		}
		return s, nil
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s, nil
}
