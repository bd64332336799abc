package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/geojson/pkg/geojson"
)

func main() {
	// Generate documents to parse
	docs := make([][]byte, 1000)
	for i := range docs {
		docs[i] = []byte(fmt.Sprintf(
			`{"type":"LineString","coordinates":[[%d,0],[%d,1],[%d,2]]}`, i, i+1, i+2))
	}
	// One broken document
	docs[500] = []byte(`{"type":"LineString","coordinates":[[0,0]]}`)

	opts := geojson.DefaultLoadOptions()
	opts.Workers = 8
	opts.ErrorLog = os.Stderr
	opts.Progress = func(done, total int) {
		if done%250 == 0 || done == total {
			fmt.Printf("Parsed %d/%d\n", done, total)
		}
	}

	geoms, errs := geojson.ParseAll(context.Background(), docs, opts)
	fmt.Printf("Parsed %d documents, %d failed\n", len(geoms)-len(errs), len(errs))

	// Cap intermediate objects per document
	opts.Parse.MaxFragments = 64
	opts.SkipErrors = false
	if _, errs := geojson.ParseAll(context.Background(), docs[:10], opts); len(errs) > 0 {
		log.Fatal(errs[0])
	}
	fmt.Println("First 10 documents fit within 64 fragments")
}
