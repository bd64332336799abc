package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geojson/pkg/geojson"
)

func main() {
	docs := map[string]string{
		"pier":    `{"type":"LineString","coordinates":[[-71.05,42.36],[-71.04,42.36]]}`,
		"buoy":    `{"type":"Point","coordinates":[-71.02,42.33]}`,
		"harbour": `{"type":"Polygon","coordinates":[[[-71.1,42.3],[-71.0,42.3],[-71.0,42.4],[-71.1,42.3]]]}`,
		"cape":    `{"type":"Point","coordinates":[-70.0,41.7]}`,
	}

	idx := geojson.NewIndex()
	for name, doc := range docs {
		g, err := geojson.ParseString(doc)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		idx.Insert(name, g)
	}

	// Define viewport (Boston Harbor area)
	viewport := geojson.Bounds{
		MinX: -71.1, MaxX: -71.0,
		MinY: 42.3, MaxY: 42.4,
	}

	// Query R-tree index for visible geometries (O(log n))
	hits := idx.Search(viewport, geojson.QueryOptions{})
	fmt.Printf("Visible geometries: %d of %d\n", len(hits), idx.Count())
	for _, h := range hits {
		fmt.Printf("  %s: %v\n", h.Name, h.Geometry.Type())
	}

	// Only points
	points := idx.Search(viewport, geojson.QueryOptions{
		Types: []geojson.GeometryType{geojson.GeometryTypePoint},
	})
	fmt.Printf("Visible points: %d\n", len(points))
}
