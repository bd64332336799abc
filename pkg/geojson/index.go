package geojson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhconnelly/rtreego"
)

// Index provides fast spatial queries over a set of parsed geometries.
//
// Each entry is stored with the bounding rectangle computed by the parser
// and looked up through an R-tree. Index is safe for concurrent use.
//
// Example:
//
//	idx := geojson.NewIndex()
//	idx.Insert("harbour", g)
//
//	hits := idx.Search(geojson.Bounds{MinX: -71.1, MinY: 42.3, MaxX: -71.0, MaxY: 42.4}, geojson.QueryOptions{})
//	fmt.Printf("Found %d geometries\n", len(hits))
type Index struct {
	mu      sync.RWMutex
	entries []*IndexEntry
	rtree   *rtreego.Rtree
}

// IndexEntry is a single indexed geometry.
type IndexEntry struct {
	Name     string    // Caller-supplied name, typically the source path
	Extent   Bounds    // Computed bounds of the geometry
	Geometry *Geometry // The parsed geometry

	seq int
}

// Bounds method for rtreego.Spatial interface.
func (e *IndexEntry) Bounds() rtreego.Rect {
	return e.Extent.rect()
}

// QueryOptions controls spatial query behavior.
type QueryOptions struct {
	// Types filters by declared geometry type.
	// If non-empty, only geometries of these types are returned.
	Types []GeometryType

	// SRID filters by spatial reference. Zero matches every geometry.
	SRID int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		// 2D, min=25 children, max=50 children
		rtree: rtreego.NewTree(2, 25, 50),
	}
}

// Insert adds g under name. Names need not be unique.
func (idx *Index) Insert(name string, g *Geometry) *IndexEntry {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	entry := &IndexEntry{
		Name:     name,
		Extent:   g.Bounds(),
		Geometry: g,
		seq:      len(idx.entries),
	}
	idx.entries = append(idx.entries, entry)
	idx.rtree.Insert(entry)
	return entry
}

// Search returns the entries whose bounds intersect bounds, in insertion order.
func (idx *Index) Search(bounds Bounds, opts QueryOptions) []*IndexEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var result []*IndexEntry
	for _, spatial := range idx.rtree.SearchIntersect(bounds.rect()) {
		entry := spatial.(*IndexEntry)

		// The R-tree widens degenerate rectangles, so recheck exactly.
		if !bounds.Intersects(entry.Extent) {
			continue
		}
		if opts.SRID != 0 && entry.Geometry.SRID() != opts.SRID {
			continue
		}
		if len(opts.Types) > 0 {
			match := false
			for _, t := range opts.Types {
				if entry.Geometry.Type() == t {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].seq < result[j].seq
	})
	return result
}

// Nearest returns up to k entries closest to the point (x, y).
func (idx *Index) Nearest(x, y float64, k int) []*IndexEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if k <= 0 || len(idx.entries) == 0 {
		return nil
	}
	spatials := idx.rtree.NearestNeighbors(k, rtreego.Point{x, y})
	result := make([]*IndexEntry, 0, len(spatials))
	for _, spatial := range spatials {
		if spatial == nil {
			continue
		}
		result = append(result, spatial.(*IndexEntry))
	}
	return result
}

// Count returns the total number of geometries in the index.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Bounds returns the union of all geometry bounds in the index.
func (idx *Index) Bounds() Bounds {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) == 0 {
		return Bounds{}
	}
	bounds := idx.entries[0].Extent
	for _, e := range idx.entries[1:] {
		bounds = bounds.Union(e.Extent)
	}
	return bounds
}

// All returns all entries in insertion order.
func (idx *Index) All() []*IndexEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]*IndexEntry(nil), idx.entries...)
}

// BuildIndexFromDir parses every GeoJSON file under root and indexes the
// ones that parse. Files ending in .geojson or .json are read, optionally
// followed by .gz.
//
// Example:
//
//	idx, errs, err := geojson.BuildIndexFromDir(ctx, "testdata", geojson.LoadOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rIndexing: %d/%d", done, total)
//	    },
//	})
func BuildIndexFromDir(ctx context.Context, root string, opts LoadOptions) (*Index, []error, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isGeoJSONFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no GeoJSON files found in %s", root)
	}

	geoms, errs := LoadFilesParallel(ctx, paths, opts)
	if err := ctx.Err(); err != nil {
		return nil, errs, err
	}
	if !opts.SkipErrors && len(errs) > 0 {
		return nil, errs, errs[0]
	}

	idx := NewIndex()
	for i, g := range geoms {
		if g != nil {
			idx.Insert(paths[i], g)
		}
	}
	if idx.Count() == 0 {
		return nil, errs, fmt.Errorf("no geometries could be loaded (%d errors)", len(errs))
	}
	return idx, errs, nil
}

func isGeoJSONFile(path string) bool {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	return strings.HasSuffix(name, ".geojson") || strings.HasSuffix(name, ".json")
}
