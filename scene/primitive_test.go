package scene

import (
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindGlyphBox, "glyph-box"},
		{KindPoint, "point"},
		{KindSlab, "slab"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestGroupAddAndBounds(t *testing.T) {
	g := newGroup(newResourceCache())
	if g.Count() != 0 {
		t.Fatalf("fresh group Count = %d, want 0", g.Count())
	}
	if !g.Bounds().IsEmpty() {
		t.Fatal("fresh group bounds not empty")
	}

	g.add(Primitive{Kind: KindPoint, Position: V3(1, 2, 3)})
	g.add(Primitive{Kind: KindPoint, Position: V3(-1, 0, 5)})

	if g.Count() != 2 {
		t.Errorf("Count = %d, want 2", g.Count())
	}
	b := g.Bounds()
	if b.Min != V3(-1, 0, 3) || b.Max != V3(1, 2, 5) {
		t.Errorf("Bounds = %v..%v", b.Min, b.Max)
	}
}

func TestGroupVersionAdvances(t *testing.T) {
	g := newGroup(newResourceCache())
	v0 := g.Version()
	g.add(Primitive{Kind: KindPoint})
	if g.Version() <= v0 {
		t.Error("Version did not advance on add")
	}
	v1 := g.Version()
	g.Dispose()
	if g.Version() <= v1 {
		t.Error("Version did not advance on dispose")
	}
}

func TestGroupRotation(t *testing.T) {
	g := newGroup(newResourceCache())
	if got := g.Rotation(); got != (Vector3{}) {
		t.Fatalf("initial rotation = %v, want zero", got)
	}
	g.SetRotation(V3(0.1, 0.2, 0.3))
	if got := g.Rotation(); got != V3(0.1, 0.2, 0.3) {
		t.Errorf("Rotation = %v, want (0.1 0.2 0.3)", got)
	}
}

func TestGroupDispose(t *testing.T) {
	cache := newResourceCache()
	geo := cache.Geometry("box:1.00", func() *Geometry { return NewBoxGeometry(1, 1, 1) })

	g := newGroup(cache)
	g.add(Primitive{Kind: KindGlyphBox, Geometry: geo})

	g.Dispose()
	if !g.Disposed() {
		t.Error("Disposed = false after Dispose")
	}
	if g.Primitives() != nil {
		t.Error("Primitives not nil after Dispose")
	}
	if !geo.Released() {
		t.Error("cached geometry not released on Dispose")
	}

	// Disposing twice must not panic or re-release.
	g.Dispose()
}

func TestGroupCacheStatsNilCache(t *testing.T) {
	g := newGroup(nil)
	if got := g.CacheStats(); got != (CacheStats{}) {
		t.Errorf("CacheStats = %+v, want zero", got)
	}
}
