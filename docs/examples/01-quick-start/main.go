package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geojson/pkg/geojson"
)

func main() {
	// Parse a polygon with a hole
	g, err := geojson.ParseString(`{"type":"Polygon",
		"crs":{"type":"name","properties":{"name":"EPSG:4326"}},
		"coordinates":[
			[[-71.1,42.3],[-71.0,42.3],[-71.0,42.4],[-71.1,42.3]],
			[[-71.06,42.33],[-71.04,42.33],[-71.04,42.35],[-71.06,42.33]]
		]}`)
	if err != nil {
		log.Fatal(err)
	}

	// Print geometry info
	fmt.Printf("Type: %v\n", g.Type())
	fmt.Printf("Dimension: %v\n", g.Dimension())
	fmt.Printf("SRID: %d\n", g.SRID())

	for i, p := range g.Polygons() {
		fmt.Printf("Polygon %d: %d exterior positions, %d holes\n",
			i, len(p.Exterior), len(p.Interiors))
	}

	// Get computed bounds
	bounds := g.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinX, bounds.MinY,
		bounds.MaxX, bounds.MaxY)
}
