package scene

import "sync"

// CacheStats is a snapshot of one group's resource cache usage.
type CacheStats struct {
	Geometries int
	Materials  int
	Hits       uint64
	Misses     uint64
}

// ResourceCache deduplicates geometries and materials across the
// primitives of a single group. Entries live until ReleaseAll; there is
// no eviction, the owning group's lifetime bounds the cache. Every build
// starts with a fresh cache, so entries never leak between groups even
// when glyph keys overlap.
type ResourceCache struct {
	mu         sync.Mutex
	geometries map[string]*Geometry
	materials  map[rune]*Material
	hits       uint64
	misses     uint64
	released   bool
}

func newResourceCache() *ResourceCache {
	return &ResourceCache{
		geometries: make(map[string]*Geometry),
		materials:  make(map[rune]*Material),
	}
}

// Geometry returns the cached geometry for key, calling create on miss.
// Insertion is idempotent: a hit returns the existing entry untouched.
func (c *ResourceCache) Geometry(key string, create func() *Geometry) *Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.geometries[key]; ok {
		c.hits++
		return g
	}
	c.misses++
	g := create()
	c.geometries[key] = g
	return g
}

// Material returns the cached material for glyph, calling create on miss.
// A failed create caches nothing, so a retry would call create again.
func (c *ResourceCache) Material(glyph rune, create func() (*Material, error)) (*Material, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.materials[glyph]; ok {
		c.hits++
		return m, nil
	}
	m, err := create()
	if err != nil {
		return nil, err
	}
	c.misses++
	c.materials[glyph] = m
	return m, nil
}

// Stats returns a snapshot of cache usage. After ReleaseAll the entry
// counts read zero.
func (c *ResourceCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Geometries: len(c.geometries),
		Materials:  len(c.materials),
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

// ReleaseAll releases every cached geometry and material exactly once.
// Later calls are no-ops, so double disposal cannot double-release.
func (c *ResourceCache) ReleaseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	for _, g := range c.geometries {
		g.Release()
	}
	for _, m := range c.materials {
		m.Release()
	}
	c.geometries = nil
	c.materials = nil
}
