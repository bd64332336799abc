package parser

import (
	"strings"
	"testing"
)

func square(interior bool) *Ring {
	return &Ring{
		Dim:      DimXY,
		Coords:   []Coord{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}},
		Interior: interior,
	}
}

// TestCheckValidity tests post-parse validation
func TestCheckValidity(t *testing.T) {
	tests := []struct {
		name       string
		collection *Collection
		wantErr    string
	}{
		{
			name:       "nil",
			collection: nil,
			wantErr:    "nil",
		},
		{
			name:       "empty aggregate",
			collection: &Collection{Type: GeometryTypeGeometryCollection},
			wantErr:    "empty",
		},
		{
			name: "valid point",
			collection: &Collection{
				Type:   GeometryTypePoint,
				Points: []*Point{{X: 1, Y: 2, Dim: DimXY}},
			},
		},
		{
			name: "empty linestring",
			collection: &Collection{
				Type:        GeometryTypeLineString,
				Linestrings: []*Linestring{{Dim: DimXY}},
			},
			wantErr: "linestring 0 has 0 points",
		},
		{
			name: "second linestring short",
			collection: &Collection{
				Type: GeometryTypeMultiLineString,
				Linestrings: []*Linestring{
					{Coords: []Coord{{0, 0, 0}, {1, 1, 0}}},
					{Coords: []Coord{{0, 0, 0}}},
				},
			},
			wantErr: "linestring 1 has 1 points",
		},
		{
			name: "valid polygon with hole",
			collection: &Collection{
				Type:     GeometryTypePolygon,
				Polygons: []*Polygon{{Exterior: square(false), Interiors: []*Ring{square(true)}}},
			},
		},
		{
			name: "empty hole",
			collection: &Collection{
				Type:     GeometryTypePolygon,
				Polygons: []*Polygon{{Exterior: square(false), Interiors: []*Ring{{Interior: true}}}},
			},
			wantErr: "polygon 0 ring 1 has 0 points",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckValidity(tt.collection)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("CheckValidity() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("CheckValidity() succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("CheckValidity() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestComputeMBRIgnoresHoles(t *testing.T) {
	hole := &Ring{Coords: []Coord{{-50, -50, 0}, {50, -50, 0}, {50, 50, 0}, {-50, -50, 0}}, Interior: true}
	c := &Collection{
		Type:     GeometryTypePolygon,
		Dim:      DimXY,
		Polygons: []*Polygon{{Exterior: square(false), Interiors: []*Ring{hole}}},
	}
	if err := CheckValidity(c); err != nil {
		t.Fatalf("CheckValidity() error = %v", err)
	}
	if c.MinX != 0 || c.MinY != 0 || c.MaxX != 1 || c.MaxY != 1 {
		t.Errorf("MBR = [%g %g %g %g], want [0 0 1 1]", c.MinX, c.MinY, c.MaxX, c.MaxY)
	}
}

func TestCheckDeclaredBBox(t *testing.T) {
	base := func(box []float64) *Collection {
		c := &Collection{
			Type:         GeometryTypePoint,
			Dim:          DimXY,
			Points:       []*Point{{X: 2, Y: 3, Dim: DimXY}},
			DeclaredBBox: box,
		}
		computeMBR(c)
		return c
	}

	tests := []struct {
		name    string
		box     []float64
		wantErr bool
	}{
		{"no bbox", nil, false},
		{"exact", []float64{2, 3, 2, 3}, false},
		{"enclosing", []float64{0, 0, 10, 10}, false},
		{"6 numbers on 2D data", []float64{0, 0, -1, 10, 10, 1}, false},
		{"misses x", []float64{3, 0, 10, 10}, true},
		{"misses y", []float64{0, 0, 10, 2}, true},
		{"odd length", []float64{0, 0, 1, 1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDeclaredBBox(base(tt.box))
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckDeclaredBBox() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
