package scene

import (
	"sync"

	"github.com/glyphforge/a3d"
)

// Kind tags the primitive variants a group can hold.
type Kind uint8

const (
	// KindGlyphBox is a textured extruded box, one per non-space grid
	// cell.
	KindGlyphBox Kind = iota
	// KindPoint is a colored point sampled from a source pixel.
	KindPoint
	// KindSlab is the single extruded silhouette shape.
	KindSlab
)

func (k Kind) String() string {
	switch k {
	case KindGlyphBox:
		return "glyph-box"
	case KindPoint:
		return "point"
	case KindSlab:
		return "slab"
	}
	return "unknown"
}

// Primitive is one renderable unit of a group: a glyph box, a point, or
// the silhouette slab, tagged by Kind.
type Primitive struct {
	Kind     Kind
	Position Vector3
	Geometry *Geometry // box and slab kinds
	Material *Material // box and slab kinds
	Color    a3d.RGBA  // point kind
}

// Group owns the primitives built from one conversion together with the
// resource cache backing them. A group is disposed as a unit; once
// disposed it renders nothing and its resources are released.
type Group struct {
	mu         sync.Mutex
	primitives []Primitive
	rotation   Vector3
	bounds     Box3
	cache      *ResourceCache
	version    uint64
	disposed   bool
}

func newGroup(cache *ResourceCache) *Group {
	return &Group{bounds: EmptyBox3(), cache: cache}
}

// add appends a primitive and grows the bounds. Only the builder calls
// this, before the group is shared, so no locking is needed here.
func (g *Group) add(p Primitive) {
	g.primitives = append(g.primitives, p)
	g.bounds = g.bounds.ExpandPoint(p.Position)
	g.version++
}

// Primitives returns the group's primitives for rendering. The slice must
// not be mutated. A disposed group returns nil.
func (g *Group) Primitives() []Primitive {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return nil
	}
	return g.primitives
}

// Count returns the number of primitives.
func (g *Group) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.primitives)
}

// Bounds returns the cumulative bounding box of primitive positions.
func (g *Group) Bounds() Box3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bounds
}

// Rotation returns the group's Euler rotation.
func (g *Group) Rotation() Vector3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

// SetRotation replaces the Euler rotation applied to the whole group when
// rendering. The animation loop calls this every tick.
func (g *Group) SetRotation(r Vector3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r
}

// Version returns the structural version, incremented on every mutation
// of the primitive set. Renderers can use it for invalidation.
func (g *Group) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}

// CacheStats reports the group's resource cache usage.
func (g *Group) CacheStats() CacheStats {
	g.mu.Lock()
	cache := g.cache
	g.mu.Unlock()
	if cache == nil {
		return CacheStats{}
	}
	return cache.Stats()
}

// Disposed reports whether Dispose has run.
func (g *Group) Disposed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.disposed
}

// Dispose releases every geometry, material, and texture created for this
// group. Idempotent: later calls are no-ops and nothing is released
// twice.
func (g *Group) Dispose() {
	g.mu.Lock()
	if g.disposed {
		g.mu.Unlock()
		return
	}
	g.disposed = true
	cache := g.cache
	count := len(g.primitives)
	g.primitives = nil
	g.version++
	g.mu.Unlock()

	if cache != nil {
		stats := cache.Stats()
		cache.ReleaseAll()
		a3d.Logger().Debug("scene: group disposed",
			"primitives", count,
			"geometries", stats.Geometries,
			"materials", stats.Materials)
	}
}
