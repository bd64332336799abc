package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/geojson/pkg/geojson"
)

func safeParseFile(path string) (*geojson.Geometry, error) {
	g, err := geojson.ParseFile(path, geojson.DefaultParseOptions())
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("geometry file not found: %s", path)
		}

		// Malformed or degenerate geometry
		if errors.Is(err, geojson.ErrInvalidGeometry) {
			log.Printf("Rejected %s: %v", path, err)
		}
		return nil, err
	}

	bounds := g.Bounds()
	if bounds.MinX == bounds.MaxX && bounds.MinY == bounds.MaxY && g.Type() != geojson.GeometryTypePoint {
		log.Printf("Warning: %s has zero-area bounds", path)
	}

	return g, nil
}

func main() {
	inputs := []string{
		`{"type":"Point","coordinates":[1,2]}`,
		`{"type":"LineString","coordinates":[[0,0]]}`,
		`{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]]]}`,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]}}`,
		`{"coordinates":[1,2],"type":"Point"}`,
	}

	for _, in := range inputs {
		if _, err := geojson.ParseString(in); err != nil {
			fmt.Printf("rejected: %v\n", err)
			continue
		}
		fmt.Printf("accepted: %s\n", in)
	}

	// Try to parse a non-existent file
	if _, err := safeParseFile("missing.geojson"); err != nil {
		log.Printf("Expected error: %v", err)
	}
}
