package parser

import (
	"fmt"
	"math"
)

// CheckValidity checks the point counts of every linestring and ring and
// that the geometry holds at least one entity. On success it computes the MBR.
func CheckValidity(c *Collection) error {
	if c == nil {
		return &ErrInvalidGeometry{Reason: "geometry is nil"}
	}

	for i, ls := range c.Linestrings {
		if len(ls.Coords) < minLinestringPoints {
			return &ErrInvalidGeometry{
				Type:   c.Type,
				Reason: fmt.Sprintf("linestring %d has %d points, need at least %d", i, len(ls.Coords), minLinestringPoints),
			}
		}
	}
	for i, p := range c.Polygons {
		for j, r := range p.Rings() {
			if len(r.Coords) < minRingPoints {
				return &ErrInvalidGeometry{
					Type:   c.Type,
					Reason: fmt.Sprintf("polygon %d ring %d has %d points, need at least %d", i, j, len(r.Coords), minRingPoints),
				}
			}
		}
	}
	if c.Entities() == 0 {
		return &ErrInvalidGeometry{Type: c.Type, Reason: "geometry is empty"}
	}

	computeMBR(c)
	return nil
}

// computeMBR sets the bounding box of c over all its positions. Interior
// rings lie inside the exterior ring and are not visited.
func computeMBR(c *Collection) {
	m := newMBR()
	for _, p := range c.Points {
		m.add(p.Coord())
	}
	for _, ls := range c.Linestrings {
		for _, co := range ls.Coords {
			m.add(co)
		}
	}
	for _, p := range c.Polygons {
		if p.Exterior == nil {
			continue
		}
		for _, co := range p.Exterior.Coords {
			m.add(co)
		}
	}
	c.MinX, c.MinY, c.MaxX, c.MaxY = m.minX, m.minY, m.maxX, m.maxY
	if c.Dim == DimXYZ {
		c.MinZ, c.MaxZ = m.minZ, m.maxZ
	} else {
		c.MinZ, c.MaxZ = 0, 0
	}
}

type mbr struct {
	minX, minY, minZ float64
	maxX, maxY, maxZ float64
}

func newMBR() mbr {
	return mbr{
		minX: math.MaxFloat64, minY: math.MaxFloat64, minZ: math.MaxFloat64,
		maxX: -math.MaxFloat64, maxY: -math.MaxFloat64, maxZ: -math.MaxFloat64,
	}
}

func (m *mbr) add(c Coord) {
	m.minX = math.Min(m.minX, c.X)
	m.minY = math.Min(m.minY, c.Y)
	m.minZ = math.Min(m.minZ, c.Z)
	m.maxX = math.Max(m.maxX, c.X)
	m.maxY = math.Max(m.maxY, c.Y)
	m.maxZ = math.Max(m.maxZ, c.Z)
}

// CheckDeclaredBBox verifies that a declared bbox encloses the computed MBR.
// CheckValidity must have run first. A geometry without bbox passes.
func CheckDeclaredBBox(c *Collection) error {
	box := c.DeclaredBBox
	if box == nil {
		return nil
	}
	var minX, minY, maxX, maxY float64
	switch len(box) {
	case 4:
		minX, minY, maxX, maxY = box[0], box[1], box[2], box[3]
	case 6:
		minX, minY, maxX, maxY = box[0], box[1], box[3], box[4]
		if c.Dim == DimXYZ && (c.MinZ < box[2] || c.MaxZ > box[5]) {
			return &ErrInvalidGeometry{
				Type:   c.Type,
				Reason: fmt.Sprintf("bbox z range [%g %g] does not contain [%g %g]", box[2], box[5], c.MinZ, c.MaxZ),
			}
		}
	default:
		return &ErrInvalidGeometry{Type: c.Type, Reason: fmt.Sprintf("bbox has %d numbers", len(box))}
	}
	if c.MinX < minX || c.MinY < minY || c.MaxX > maxX || c.MaxY > maxY {
		return &ErrInvalidGeometry{
			Type: c.Type,
			Reason: fmt.Sprintf("bbox [%g %g %g %g] does not contain MBR [%g %g %g %g]",
				minX, minY, maxX, maxY, c.MinX, c.MinY, c.MaxX, c.MaxY),
		}
	}
	return nil
}
