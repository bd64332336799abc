package geojson

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ParseAll parses many documents with a worker pool.
//
// The returned slice has one element per document, in input order; a
// document that failed has a nil entry and its error is collected in the
// error slice (prefixed with "document N"). With SkipErrors false the first
// failure cancels the remaining work and ParseAll returns nil and that error.
// Cancelling ctx stops the pool; documents not yet started are reported with
// ctx.Err().
//
// Example:
//
//	geoms, errs := geojson.ParseAll(ctx, docs, geojson.LoadOptions{
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    ErrorLog:   os.Stderr,
//	})
func ParseAll(ctx context.Context, docs [][]byte, opts LoadOptions) ([]*Geometry, []error) {
	p := NewParser()
	return runParallel(ctx, len(docs), opts,
		func(i int) string { return fmt.Sprintf("document %d", i) },
		func(i int) (*Geometry, error) { return p.ParseWithOptions(docs[i], opts.Parse) },
	)
}

// LoadFilesParallel parses many files with a worker pool. Results follow the
// same rules as ParseAll, with errors prefixed by the file path.
//
// Example:
//
//	geoms, errs := geojson.LoadFilesParallel(ctx, paths, geojson.LoadOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rLoading: %d/%d (%.0f%%)",
//	            done, total, float64(done)/float64(total)*100)
//	    },
//	})
func LoadFilesParallel(ctx context.Context, paths []string, opts LoadOptions) ([]*Geometry, []error) {
	return runParallel(ctx, len(paths), opts,
		func(i int) string { return paths[i] },
		func(i int) (*Geometry, error) { return ParseFile(paths[i], opts.Parse) },
	)
}

func runParallel(ctx context.Context, n int, opts LoadOptions,
	name func(int) string, work func(int) (*Geometry, error)) ([]*Geometry, []error) {
	if n == 0 {
		return []*Geometry{}, nil
	}

	// If parallel parsing disabled, fall back to serial
	if !opts.Parallel {
		return runSerial(ctx, n, opts, name, work)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		index int
		geom  *Geometry
		err   error
	}

	jobs := make(chan int, n)
	results := make(chan result, n)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{index: index, err: err}
					continue
				}
				g, err := work(index)
				results <- result{index: index, geom: g, err: err}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	geoms := make([]*Geometry, n)
	var failed []result
	done := 0

	for r := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, n)
		}

		if r.err != nil {
			err := fmt.Errorf("%s: %w", name(r.index), r.err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error parsing %v\n", err)
			}
			if !opts.SkipErrors {
				// Stop on first error
				cancel()
				return nil, []error{err}
			}
			r.err = err
			failed = append(failed, r)
			continue
		}
		geoms[r.index] = r.geom
	}

	// Report errors in input order.
	ordered := make([]error, n)
	for _, r := range failed {
		ordered[r.index] = r.err
	}
	var errs []error
	for _, err := range ordered {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return geoms, errs
}

// runSerial parses one document at a time (fallback when Parallel=false).
func runSerial(ctx context.Context, n int, opts LoadOptions,
	name func(int) string, work func(int) (*Geometry, error)) ([]*Geometry, []error) {
	geoms := make([]*Geometry, n)
	var errs []error

	for i := 0; i < n; i++ {
		var g *Geometry
		err := ctx.Err()
		if err == nil {
			g, err = work(i)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, n)
		}

		if err != nil {
			err := fmt.Errorf("%s: %w", name(i), err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error parsing %v\n", err)
			}
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		geoms[i] = g
	}
	return geoms, errs
}
