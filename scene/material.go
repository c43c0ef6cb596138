package scene

import "github.com/glyphforge/a3d"

// Material pairs display attributes with an optional glyph texture. Box
// primitives carry textured materials; the silhouette slab uses a flat
// one.
type Material struct {
	Glyph     rune
	Color     a3d.RGBA
	Texture   *Texture
	Wireframe bool

	released bool
}

// Release frees the material and its texture. Safe to call more than once.
func (m *Material) Release() {
	if m.Texture != nil {
		m.Texture.Release()
	}
	m.released = true
}

// Released reports whether Release has run.
func (m *Material) Released() bool { return m.released }

// newGlyphMaterial renders the glyph tile backing a box primitive.
func newGlyphMaterial(glyph rune, ink a3d.RGBA) (*Material, error) {
	tex, err := renderGlyphTile(glyph, ink)
	if err != nil {
		return nil, err
	}
	return &Material{Glyph: glyph, Color: ink, Texture: tex}, nil
}

// newFlatMaterial builds a textureless material for slab primitives.
func newFlatMaterial(col a3d.RGBA, wireframe bool) *Material {
	return &Material{Color: col, Wireframe: wireframe}
}
