// Package scene assembles character grids and pixel buffers into groups
// of renderable primitives: textured glyph boxes, point clouds, or a
// single extruded silhouette slab. Geometries and materials are
// deduplicated through a per-group resource cache whose lifetime is bound
// to the group.
package scene

import (
	"fmt"

	"github.com/glyphforge/a3d"
)

// Mode selects how source content becomes geometry.
type Mode uint8

const (
	// ModeGrid extrudes one textured box per non-space glyph of the
	// character grid, depth scaled by glyph weight.
	ModeGrid Mode = iota
	// ModePoints samples source pixels into a colored point cloud.
	ModePoints
	// ModeMesh extrudes the opaque-pixel bounding box into a single
	// beveled slab. The rectangle is an approximation of the true
	// silhouette, not a traced contour.
	ModeMesh
	// ModeWireframe is ModeMesh rendered with a wireframe material.
	ModeWireframe
)

func (m Mode) String() string {
	switch m {
	case ModeGrid:
		return "grid"
	case ModePoints:
		return "points"
	case ModeMesh:
		return "mesh"
	case ModeWireframe:
		return "wireframe"
	}
	return "unknown"
}

// ParseMode maps a mode name to its Mode value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "grid":
		return ModeGrid, nil
	case "points":
		return ModePoints, nil
	case "mesh":
		return ModeMesh, nil
	case "wireframe":
		return ModeWireframe, nil
	}
	return 0, fmt.Errorf("scene: unknown mode %q", s)
}

// Config controls scene assembly. The zero value builds the grid variant
// with default depth, density, and ramp.
type Config struct {
	// Mode selects the geometry variant.
	Mode Mode

	// Depth is the base extrusion depth in scene units. Defaults to 10.
	Depth float32

	// Density sets the point sampling rate in (0, 1]. Defaults to 0.6.
	Density float32

	// Ramp supplies the glyphs when Build runs its own conversion.
	// Defaults to a3d.RampStandard.
	Ramp a3d.Ramp

	// GridWidth bounds the derived character grid width. Defaults to
	// a3d.DefaultWidth.
	GridWidth int

	// Ink colors glyph tiles. Defaults to near-black.
	Ink a3d.RGBA
}

func (c *Config) applyDefaults() {
	if c.Depth == 0 {
		c.Depth = 10
	}
	if c.Density == 0 {
		c.Density = 0.6
	}
	if len(c.Ramp) == 0 {
		c.Ramp = a3d.RampStandard
	}
	if c.GridWidth == 0 {
		c.GridWidth = a3d.DefaultWidth
	}
	if c.Ink == (a3d.RGBA{}) {
		c.Ink = a3d.RGBA{R: 0.12, G: 0.12, B: 0.12, A: 1}
	}
}

// Scene layout constants. One grid cell maps to one scene unit; boxes
// fill most of the cell, leaving a visible gap. Point positions scale
// pixel coordinates down so typical rasters land near the origin.
const (
	cellPitch    = 1.0
	boxFill      = 0.88
	pointScale   = 0.1
	alphaVisible = 0.5
)

// Build assembles a group from a pixel buffer according to cfg. Grid mode
// first reduces the buffer to a character grid; the other modes sample
// pixels directly. On failure any partially built resources are released
// before returning.
func Build(pm *a3d.Pixmap, cfg Config) (*Group, error) {
	if pm == nil || pm.Width() <= 0 || pm.Height() <= 0 || len(pm.Data()) == 0 {
		return nil, a3d.ErrCanvasUnavailable
	}
	cfg.applyDefaults()

	switch cfg.Mode {
	case ModeGrid:
		grid, err := a3d.Convert(pm, a3d.WithRamp(cfg.Ramp), a3d.WithWidth(cfg.GridWidth))
		if err != nil {
			return nil, err
		}
		return BuildFromGrid(grid, cfg)
	case ModePoints:
		return buildPoints(pm, cfg)
	case ModeMesh, ModeWireframe:
		return buildSlab(pm, cfg)
	}
	return nil, fmt.Errorf("scene: unknown mode %d", cfg.Mode)
}

// BuildFromGrid assembles the glyph-box variant from an existing grid.
// Space cells produce no primitive. Geometry is cached by extrusion depth
// quantized to two decimals; materials are cached by glyph.
func BuildFromGrid(grid *a3d.Grid, cfg Config) (*Group, error) {
	if grid == nil || grid.Width <= 0 || grid.Height <= 0 {
		return nil, a3d.ErrNoContent
	}
	cfg.applyDefaults()

	cache := newResourceCache()
	g := newGroup(cache)
	cols, rows := grid.Width, grid.Height

	for r, row := range grid.Rows() {
		// Index runes, not bytes: block ramps are multi-byte.
		for c, glyph := range []rune(row) {
			if glyph == ' ' {
				continue
			}
			w := GlyphWeight(glyph)
			depth := w.Depth(cfg.Depth)
			key := fmt.Sprintf("box:%.2f", depth)
			geo := cache.Geometry(key, func() *Geometry {
				return NewBoxGeometry(boxFill*cellPitch, boxFill*cellPitch, depth)
			})
			mat, err := cache.Material(glyph, func() (*Material, error) {
				return newGlyphMaterial(glyph, cfg.Ink)
			})
			if err != nil {
				g.Dispose()
				return nil, err
			}
			g.add(Primitive{
				Kind: KindGlyphBox,
				Position: Vector3{
					X: (float32(c) - float32(cols)/2) * cellPitch,
					Y: (float32(rows)/2 - float32(r)) * cellPitch,
					Z: w.ZOffset(cfg.Depth),
				},
				Geometry: geo,
				Material: mat,
			})
		}
	}

	stats := cache.Stats()
	a3d.Logger().Info("scene: group built",
		"mode", ModeGrid.String(),
		"primitives", g.Count(),
		"geometries", stats.Geometries,
		"materials", stats.Materials)
	return g, nil
}

// buildPoints samples pixels at a density-derived stride. Pixels at most
// half opaque are skipped; survivors become points at the pixel position
// scaled into scene units, pushed forward by luminance.
func buildPoints(pm *a3d.Pixmap, cfg Config) (*Group, error) {
	g := newGroup(newResourceCache())
	step := int(1 / cfg.Density)
	if step < 1 {
		step = 1
	}
	sw, sh := pm.Width(), pm.Height()
	cx, cy := float32(sw)/2, float32(sh)/2

	for y := 0; y < sh; y += step {
		for x := 0; x < sw; x += step {
			px := pm.GetPixel(x, y)
			if px.A <= alphaVisible {
				continue
			}
			g.add(Primitive{
				Kind: KindPoint,
				Position: Vector3{
					X: (float32(x) - cx) * pointScale,
					Y: -(float32(y) - cy) * pointScale,
					Z: float32(pm.Luminance(x, y)) * cfg.Depth,
				},
				Color: a3d.RGB(px.R, px.G, px.B),
			})
		}
	}

	a3d.Logger().Info("scene: group built",
		"mode", ModePoints.String(),
		"primitives", g.Count(),
		"stride", step)
	return g, nil
}

// buildSlab extrudes the bounding box of visibly opaque pixels into one
// beveled slab centered where the content sits.
func buildSlab(pm *a3d.Pixmap, cfg Config) (*Group, error) {
	cache := newResourceCache()
	g := newGroup(cache)

	sw, sh := pm.Width(), pm.Height()
	minX, minY := sw, sh
	maxX, maxY := -1, -1
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if pm.GetPixel(x, y).A > alphaVisible {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX {
		a3d.Logger().Debug("scene: no opaque pixels, slab group is empty")
		return g, nil
	}

	w := float32(maxX-minX+1) * pointScale
	h := float32(maxY-minY+1) * pointScale
	key := fmt.Sprintf("slab:%.2fx%.2f", w, h)
	geo := cache.Geometry(key, func() *Geometry {
		return NewSlabGeometry(w, h, cfg.Depth, cfg.Depth*0.08)
	})
	mat, err := cache.Material(0, func() (*Material, error) {
		return newFlatMaterial(a3d.RGBA{R: 0.85, G: 0.85, B: 0.9, A: 1}, cfg.Mode == ModeWireframe), nil
	})
	if err != nil {
		g.Dispose()
		return nil, err
	}

	g.add(Primitive{
		Kind: KindSlab,
		Position: Vector3{
			X: (float32(minX+maxX+1)/2 - float32(sw)/2) * pointScale,
			Y: -(float32(minY+maxY+1)/2 - float32(sh)/2) * pointScale,
		},
		Geometry: geo,
		Material: mat,
	})

	a3d.Logger().Info("scene: group built",
		"mode", cfg.Mode.String(),
		"bounds", fmt.Sprintf("%dx%d px", maxX-minX+1, maxY-minY+1))
	return g, nil
}
