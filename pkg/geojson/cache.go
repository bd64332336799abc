package geojson

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// GeometryCache holds parsed geometries with an LRU eviction policy.
//
// Geometries are evicted least-recently-used first once the estimated memory
// of the cached set exceeds the limit. Memory estimation is approximate, based
// on position counts.
//
// Example:
//
//	cache := geojson.NewGeometryCache(64 * 1024 * 1024) // 64MB limit
//
//	g, err := cache.Get("roads.geojson", func() (*geojson.Geometry, error) {
//	    return geojson.ParseFile("roads.geojson", geojson.DefaultParseOptions())
//	})
type GeometryCache struct {
	maxMemory  int64 // Maximum memory in bytes
	usedMemory int64 // Current memory usage estimate
	entries    map[string]*cacheEntry
	lru        *list.List // LRU list (most recent at front)
	hits       int
	misses     int
	mu         sync.Mutex
}

// cacheEntry tracks a cached geometry and its metadata
type cacheEntry struct {
	name         string
	geometry     *Geometry
	memorySize   int64
	element      *list.Element // Position in LRU list
	lastAccessed time.Time
	accessCount  int
}

// NewGeometryCache creates a new cache with the specified memory limit in
// bytes. Set to 0 for unlimited cache size.
func NewGeometryCache(maxMemoryBytes int64) *GeometryCache {
	return &GeometryCache{
		maxMemory: maxMemoryBytes,
		entries:   make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get returns the cached geometry for name, calling loader on a miss.
//
// The loader runs without the cache lock held, so two concurrent misses on
// the same name may both load; the later result replaces the earlier one.
func (c *GeometryCache) Get(name string, loader func() (*Geometry, error)) (*Geometry, error) {
	c.mu.Lock()
	if entry, ok := c.entries[name]; ok {
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.hits++
		c.mu.Unlock()
		return entry.geometry, nil
	}
	c.misses++
	c.mu.Unlock()

	g, err := loader()
	if err != nil {
		return nil, err
	}

	// A geometry too large to cache is still returned.
	_ = c.Add(name, g)
	return g, nil
}

// Add adds a geometry to the cache.
//
// If the cache is at capacity, least-recently-used geometries are evicted to
// make room. Returns error if the geometry is larger than the limit.
func (c *GeometryCache) Add(name string, g *Geometry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memSize := estimateGeometryMemory(g)

	if entry, ok := c.entries[name]; ok {
		c.usedMemory += memSize - entry.memorySize
		entry.geometry = g
		entry.memorySize = memSize
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.evictOver(entry)
		return nil
	}

	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("geometry too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}

	entry := &cacheEntry{
		name:         name,
		geometry:     g,
		memorySize:   memSize,
		lastAccessed: time.Now(),
		accessCount:  1,
	}
	c.usedMemory += memSize
	entry.element = c.lru.PushFront(entry)
	c.entries[name] = entry
	c.evictOver(entry)
	return nil
}

// evictOver evicts from the back of the LRU list until the cache fits,
// never evicting keep. Must be called with c.mu locked.
func (c *GeometryCache) evictOver(keep *cacheEntry) {
	if c.maxMemory <= 0 {
		return
	}
	for c.usedMemory > c.maxMemory {
		elem := c.lru.Back()
		if elem == nil || elem.Value.(*cacheEntry) == keep {
			return
		}
		c.evict(elem)
	}
}

// evict removes elem from the cache. Must be called with c.mu locked.
func (c *GeometryCache) evict(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.entries, entry.name)
	c.usedMemory -= entry.memorySize
}

// Remove explicitly removes a geometry from the cache.
func (c *GeometryCache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[name]; ok {
		c.evict(entry.element)
	}
}

// Clear removes all geometries from the cache.
func (c *GeometryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *GeometryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Count:      len(c.entries),
		UsedMemory: c.usedMemory,
		MaxMemory:  c.maxMemory,
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	Count      int   // Number of geometries currently cached
	UsedMemory int64 // Estimated memory usage in bytes
	MaxMemory  int64 // Maximum memory limit in bytes
	Hits       int   // Lookups served from the cache
	Misses     int   // Lookups that called the loader
}

// estimateGeometryMemory estimates memory usage for a geometry: a fixed
// overhead plus 24 bytes per position and 64 per linestring, ring or polygon.
func estimateGeometryMemory(g *Geometry) int64 {
	if g == nil {
		return 0
	}

	size := int64(256)
	size += int64(len(g.points)) * 24
	for _, ls := range g.lineStrings {
		size += 64 + int64(len(ls))*24
	}
	for _, p := range g.polygons {
		size += 64 + 64 + int64(len(p.Exterior))*24
		for _, hole := range p.Interiors {
			size += 64 + int64(len(hole))*24
		}
	}
	return size
}
