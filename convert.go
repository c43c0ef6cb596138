package a3d

import (
	"fmt"
	"strings"
)

const (
	// CharAspect is the assumed height to width ratio of a terminal glyph
	// cell. Deriving one grid dimension from the other divides by it so
	// the rendered output keeps the source proportions.
	CharAspect = 2.0

	// DefaultWidth is the grid width used when neither dimension is set.
	DefaultWidth = 80

	// MaxCells bounds the character grid size so downstream per-cell work
	// (and per-cell scene primitives) stays tractable.
	MaxCells = 40000
)

// Grid is the result of a conversion: glyph rows joined with '\n', with a
// trailing newline after the last row.
type Grid struct {
	Text   string
	Width  int
	Height int
}

// Rows splits the grid text into rune rows, top to bottom.
func (g *Grid) Rows() [][]rune {
	lines := strings.Split(strings.TrimSuffix(g.Text, "\n"), "\n")
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(line)
	}
	return rows
}

// Convert reduces a pixel buffer to a character grid.
//
// The pipeline runs in two passes. The first pass averages each cell's
// source pixels into a luminance value, applies contrast around the 0.5
// midpoint and optional inversion. The optional second pass estimates
// luminance gradients with Sobel kernels and darkens cells along edges.
// Finally each cell's luminance selects a glyph from the ramp, darkest
// glyph for the darkest cells.
//
// Convert fails with ErrCanvasUnavailable when the buffer has no pixel
// data and ErrInvalidRamp when the ramp has fewer than two glyphs.
func Convert(pm *Pixmap, opts ...ConvertOption) (*Grid, error) {
	if pm == nil || pm.width <= 0 || pm.height <= 0 || len(pm.data) == 0 {
		return nil, ErrCanvasUnavailable
	}
	o := defaultConvertOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.ramp) < 2 {
		return nil, ErrInvalidRamp
	}

	w, h, err := gridDims(pm.width, pm.height, &o)
	if err != nil {
		return nil, err
	}

	g := reduceLuminance(pm, w, h, &o)
	if o.edgeEnhance {
		g = enhanceEdges(g)
	}

	var sb strings.Builder
	sb.Grow(h * (w + 1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sb.WriteRune(o.ramp.Glyph(g.at(x, y)))
		}
		sb.WriteByte('\n')
	}

	Logger().Debug("a3d: converted pixel buffer",
		"source", fmt.Sprintf("%dx%d", pm.width, pm.height),
		"grid", fmt.Sprintf("%dx%d", w, h),
		"edge_enhance", o.edgeEnhance)

	return &Grid{Text: sb.String(), Width: w, Height: h}, nil
}

// gridDims resolves the target grid size. Explicit dimensions are used
// as-is; a missing one is derived from source proportions, compensating
// for CharAspect unless aspect correction is off. With neither set the
// width defaults to DefaultWidth. Derived dimensions are floored and
// clamped to at least one cell.
func gridDims(sw, sh int, o *convertOptions) (int, int, error) {
	w, h := o.width, o.height
	if w <= 0 && h <= 0 {
		w = DefaultWidth
	}
	switch {
	case w > 0 && h <= 0:
		if o.maintainAspect {
			h = int(float64(w) * float64(sh) / (float64(sw) * CharAspect))
		} else {
			h = w * sh / sw
		}
	case h > 0 && w <= 0:
		if o.maintainAspect {
			w = int(float64(h) * float64(sw) * CharAspect / float64(sh))
		} else {
			w = h * sw / sh
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w*h > MaxCells {
		return 0, 0, fmt.Errorf("a3d: grid %dx%d exceeds %d cells", w, h, MaxCells)
	}
	return w, h, nil
}
