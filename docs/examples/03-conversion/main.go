package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geojson/pkg/geojson"
)

func main() {
	g, err := geojson.ParseString(`{"type":"MultiPoint",
		"crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::4326"}},
		"coordinates":[[-71.0589,42.3601,12.5],[-71.0636,42.3555,3.25]]}`)
	if err != nil {
		log.Fatal(err)
	}

	// Well-Known Text via go-geom
	wkt, err := geojson.WKT(g)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("WKT:", wkt)

	// go-geom geometry for further processing
	t, err := geojson.ToGeom(g)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("go-geom: %T layout=%v srid=%d\n", t, t.Layout(), t.SRID())

	// Back to GeoJSON with a short crs, a bbox and two decimals
	out, err := geojson.Encode(g, geojson.EncodeOptions{
		Precision: 2,
		CRS:       geojson.CRSShort,
		BBox:      true,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("GeoJSON:", string(out))
}
