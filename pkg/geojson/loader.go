package geojson

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ParseFile reads and parses a GeoJSON file. Files ending in .gz are
// decompressed first.
func ParseFile(path string, opts ParseOptions) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	return ParseReader(r, opts)
}

// Loader parses files on demand and keeps the results in a GeometryCache.
//
// Example:
//
//	loader := geojson.NewLoader(64*1024*1024, geojson.DefaultParseOptions())
//	g, err := loader.Load("parcels/0042.geojson.gz")
type Loader struct {
	cache *GeometryCache
	opts  ParseOptions
}

// NewLoader creates a loader whose cache holds up to maxMemoryBytes of
// geometries. Zero means unlimited.
func NewLoader(maxMemoryBytes int64, opts ParseOptions) *Loader {
	return &Loader{
		cache: NewGeometryCache(maxMemoryBytes),
		opts:  opts,
	}
}

// Load returns the geometry in path, parsing it on first use. Paths are
// cleaned before lookup so "a/./b.json" and "a/b.json" share an entry.
func (l *Loader) Load(path string) (*Geometry, error) {
	key := filepath.Clean(path)
	return l.cache.Get(key, func() (*Geometry, error) {
		return ParseFile(key, l.opts)
	})
}

// Evict drops path from the cache so the next Load reparses it.
func (l *Loader) Evict(path string) {
	l.cache.Remove(filepath.Clean(path))
}

// Stats returns the statistics of the underlying cache.
func (l *Loader) Stats() CacheStats {
	return l.cache.Stats()
}
