package scene

import "strings"

// Weight classifies a glyph's ink coverage. The value feeds directly into
// depth scaling, so the constants are the scale factors themselves.
type Weight float32

const (
	WeightLight  Weight = 0.3
	WeightMedium Weight = 0.7
	WeightHeavy  Weight = 1.0
)

// Glyph buckets for weight classification. Membership is a fixed lookup;
// glyphs in neither bucket are medium.
const (
	heavyGlyphs = "$@B%8&WM#NQ0█▓"
	lightGlyphs = ".,'`\"^:;~-_!ilI|/\\()<>░"
)

// GlyphWeight classifies a glyph as heavy, medium, or light.
func GlyphWeight(g rune) Weight {
	switch {
	case strings.ContainsRune(heavyGlyphs, g):
		return WeightHeavy
	case strings.ContainsRune(lightGlyphs, g):
		return WeightLight
	}
	return WeightMedium
}

// Depth returns the extrusion depth for this weight given the configured
// base depth. Light glyphs extrude to 51% of base, heavy to the full base.
func (w Weight) Depth(base float32) float32 {
	return base * (0.3 + float32(w)*0.7)
}

// ZOffset returns the forward bulge for this weight: heavier glyphs sit
// slightly closer to the viewer.
func (w Weight) ZOffset(base float32) float32 {
	return (float32(w) - 0.5) * base * 0.2
}

func (w Weight) String() string {
	switch w {
	case WeightLight:
		return "light"
	case WeightHeavy:
		return "heavy"
	}
	return "medium"
}
