// Package geojson provides a parser for GeoJSON geometry objects.
//
// The parser reads a single geometry (Point, LineString, Polygon, MultiPoint,
// MultiLineString, MultiPolygon or GeometryCollection) in 2D or 3D, with an
// optional "crs" member naming an EPSG code and an optional "bbox" member.
// Features, FeatureCollections and arbitrary properties are not geometries
// and are rejected.
//
// # Basic Usage
//
//	g, err := geojson.ParseString(`{"type":"Point","coordinates":[1.5,2.5]}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%v %v with %d points\n", g.Type(), g.Dimension(), len(g.Points()))
//
// # Flattened Entities
//
// A Geometry exposes three flat lists: Points, LineStrings and Polygons.
// Nested collections are flattened into them, so a GeometryCollection
// holding a MultiPoint and a Polygon reports both points under Points and the
// polygon under Polygons. Type always reports the declared type.
//
// # Member Order
//
// Members must appear in the order type, crs, bbox, then coordinates (or
// geometries for a GeometryCollection). Members of a GeometryCollection carry
// only type and coordinates.
//
//	{"type":"Polygon",
//	 "crs":{"type":"name","properties":{"name":"EPSG:4326"}},
//	 "bbox":[0,0,10,10],
//	 "coordinates":[[[0,0],[10,0],[10,10],[0,0]]]}
//
// Both the short "EPSG:n" and the long "urn:ogc:def:crs:EPSG::n" CRS names
// are understood.
//
// # Errors
//
// Every failure wraps ErrInvalidGeometry:
//
//	if errors.Is(err, geojson.ErrInvalidGeometry) {
//	    // malformed, unsupported or degenerate input
//	}
//
// # Encoding and Interop
//
// Encode writes a Geometry back to GeoJSON, ToGeom converts it to a go-geom
// geometry, and WKT renders it as Well-Known Text.
//
// # Many Documents
//
// ParseAll and LoadFilesParallel parse many inputs with a worker pool, Index
// answers bounding-box queries over the results, and Loader caches parsed
// files in memory.
package geojson
