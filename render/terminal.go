package render

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chewxy/math32"
	"github.com/muesli/termenv"

	"github.com/glyphforge/a3d"
	"github.com/glyphforge/a3d/scene"
)

// Terminal rasterizes scene groups into a character cell grid and writes
// each frame over the previous one with ANSI cursor addressing. Glyph
// boxes render as their glyph, points as a density glyph colored from the
// source pixel, and the silhouette slab as shaded block fills or
// wireframe edges. Cells darken with distance; colors degrade with the
// terminal profile down to plain glyphs.
type Terminal struct {
	mu         sync.Mutex
	frames     *Frames
	profile    termenv.Profile
	background a3d.RGBA

	width, height int
	glyphs        []rune
	colors        []a3d.RGBA // zero alpha marks an unstyled cell
	depth         []float32

	frame    uint64
	released bool
}

var _ Target = (*Terminal)(nil)

// TerminalOption configures a Terminal.
type TerminalOption func(*terminalOptions)

type terminalOptions struct {
	writer     io.Writer
	profile    termenv.Profile
	profileSet bool
	background a3d.RGBA
}

// WithWriter directs frames to w instead of standard output.
func WithWriter(w io.Writer) TerminalOption {
	return func(o *terminalOptions) { o.writer = w }
}

// WithProfile forces a color profile instead of detecting one from the
// environment.
func WithProfile(p termenv.Profile) TerminalOption {
	return func(o *terminalOptions) {
		o.profile = p
		o.profileSet = true
	}
}

// WithBackground fills cells with a background color on profiles that can
// express it.
func WithBackground(c a3d.RGBA) TerminalOption {
	return func(o *terminalOptions) { o.background = c }
}

// NewTerminal creates a terminal target of the given size in character
// cells.
func NewTerminal(width, height int, opts ...TerminalOption) *Terminal {
	o := terminalOptions{writer: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	var out *termenv.Output
	if o.profileSet {
		out = termenv.NewOutput(o.writer, termenv.WithProfile(o.profile))
	} else {
		out = termenv.NewOutput(o.writer)
	}

	t := &Terminal{
		frames:     NewFrames(out),
		profile:    out.Profile,
		background: o.background,
	}
	t.resize(width, height)
	return t
}

// Width returns the surface width in cells.
func (t *Terminal) Width() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width
}

// Height returns the surface height in cells.
func (t *Terminal) Height() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.height
}

// Resize reallocates the cell grid. The next frame repaints fully, so no
// contents are preserved.
func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released || (width == t.width && height == t.height) {
		return
	}
	t.resize(width, height)
}

func (t *Terminal) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	t.width, t.height = width, height
	n := width * height
	t.glyphs = make([]rune, n)
	t.colors = make([]a3d.RGBA, n)
	t.depth = make([]float32, n)
}

// Render projects the group through the camera and repaints the terminal.
// A frame that cannot be drawn is dropped; Render never fails outward.
func (t *Terminal) Render(g *scene.Group, cam *scene.Camera) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		a3d.Logger().Warn("render: frame dropped, terminal already released")
		return
	}
	if g == nil || cam == nil || t.width <= 0 || t.height <= 0 {
		return
	}

	t.clearFrame()
	model := scene.RotationEuler(g.Rotation())
	mvp := cam.ViewProjection().Mul(model)

	for _, p := range g.Primitives() {
		switch p.Kind {
		case scene.KindPoint:
			if px, ok := t.project(mvp, p.Position); ok {
				t.plotCell(px, pointGlyph(p.Color), depthShade(p.Color, px.z))
			}
		case scene.KindGlyphBox:
			if px, ok := t.project(mvp, p.Position); ok {
				glyph := '#'
				if p.Material != nil {
					glyph = p.Material.Glyph
				}
				t.plotCell(px, glyph, depthShade(boxInk, px.z))
			}
		case scene.KindSlab:
			t.drawSlab(p, model, mvp)
		}
	}

	t.frame++
	t.flush()
}

// Release restores the cursor and drops the cell buffers. Idempotent.
func (t *Terminal) Release() {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.released = true
	frames := t.frame
	t.glyphs, t.colors, t.depth = nil, nil, nil
	t.mu.Unlock()

	t.frames.Close()
	a3d.Logger().Debug("render: terminal released", "frames", frames)
}

// Snapshot returns the glyphs of the last frame without styling, rows
// joined by newlines. A testing and debugging hook.
func (t *Terminal) Snapshot() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released || t.width == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(t.height * (t.width + 1))
	for y := 0; y < t.height; y++ {
		b.WriteString(string(t.glyphs[y*t.width : (y+1)*t.width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *Terminal) clearFrame() {
	for i := range t.glyphs {
		t.glyphs[i] = ' '
	}
	for i := range t.colors {
		t.colors[i] = a3d.RGBA{}
	}
	for i := range t.depth {
		t.depth[i] = math32.MaxFloat32
	}
}

// projected is a point in screen space: fractional cell coordinates plus
// NDC depth for the z test.
type projected struct {
	x, y, z float32
}

func (t *Terminal) project(mvp scene.Matrix4, p scene.Vector3) (projected, bool) {
	v, w := mvp.TransformPoint(p)
	if w <= 0 {
		return projected{}, false
	}
	return projected{
		x: (v.X/w + 1) * 0.5 * float32(t.width),
		y: (1 - v.Y/w) * 0.5 * float32(t.height),
		z: v.Z / w,
	}, true
}

func (t *Terminal) plotCell(p projected, glyph rune, col a3d.RGBA) {
	if p.z < -1 || p.z > 1 {
		return
	}
	x, y := int(math32.Floor(p.x)), int(math32.Floor(p.y))
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	i := y*t.width + x
	if p.z >= t.depth[i] {
		return
	}
	t.depth[i] = p.z
	t.glyphs[i] = glyph
	t.colors[i] = col
}

func (t *Terminal) plotLine(a, b projected, glyph rune, col a3d.RGBA) {
	steps := int(math32.Max(math32.Abs(b.x-a.x), math32.Abs(b.y-a.y)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		f := float32(i) / float32(steps)
		t.plotCell(projected{
			x: a.x + (b.x-a.x)*f,
			y: a.y + (b.y-a.y)*f,
			z: a.z + (b.z-a.z)*f,
		}, glyph, col)
	}
}

// drawSlab rasterizes the slab's triangles: filled with lighting-shaded
// blocks, or as edge lines for wireframe materials.
func (t *Terminal) drawSlab(p scene.Primitive, model, mvp scene.Matrix4) {
	geo, mat := p.Geometry, p.Material
	if geo == nil || mat == nil || geo.Released() {
		return
	}

	for i := 0; i+2 < len(geo.Indices); i += 3 {
		i0, i1, i2 := geo.Indices[i], geo.Indices[i+1], geo.Indices[i+2]
		v0, ok0 := t.project(mvp, vertexAt(geo.Positions, i0).Add(p.Position))
		v1, ok1 := t.project(mvp, vertexAt(geo.Positions, i1).Add(p.Position))
		v2, ok2 := t.project(mvp, vertexAt(geo.Positions, i2).Add(p.Position))
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		if mat.Wireframe {
			t.plotLine(v0, v1, '+', mat.Color)
			t.plotLine(v1, v2, '+', mat.Color)
			t.plotLine(v2, v0, '+', mat.Color)
			continue
		}

		normal := model.TransformDirection(vertexAt(geo.Normals, i0))
		intensity := 0.3 + 0.7*math32.Max(0, normal.Dot(slabLight))
		col := a3d.RGBA{
			R: mat.Color.R * float64(intensity),
			G: mat.Color.G * float64(intensity),
			B: mat.Color.B * float64(intensity),
			A: 1,
		}
		t.fillTriangle(v0, v1, v2, shadeGlyph(intensity), col)
	}
}

func (t *Terminal) fillTriangle(v0, v1, v2 projected, glyph rune, col a3d.RGBA) {
	// Counter-clockwise world winding flips to negative screen area
	// after the Y flip; non-negative area is a back face.
	area := (v1.x-v0.x)*(v2.y-v0.y) - (v1.y-v0.y)*(v2.x-v0.x)
	if area >= 0 {
		return
	}

	minX := clampCell(int(math32.Floor(min3(v0.x, v1.x, v2.x))), t.width)
	maxX := clampCell(int(math32.Ceil(max3(v0.x, v1.x, v2.x))), t.width)
	minY := clampCell(int(math32.Floor(min3(v0.y, v1.y, v2.y))), t.height)
	maxY := clampCell(int(math32.Ceil(max3(v0.y, v1.y, v2.y))), t.height)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			b0, b1, b2, ok := barycentric(v0, v1, v2, float32(x)+0.5, float32(y)+0.5)
			if !ok || b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			t.plotCell(projected{
				x: float32(x) + 0.5,
				y: float32(y) + 0.5,
				z: b0*v0.z + b1*v1.z + b2*v2.z,
			}, glyph, col)
		}
	}
}

// flush batches runs of identically colored cells into styled segments
// and writes the frame.
func (t *Terminal) flush() {
	var b strings.Builder
	b.Grow(t.height * (t.width + 1))
	out := t.frames.Output()

	for y := 0; y < t.height; y++ {
		x := 0
		for x < t.width {
			col := t.colors[y*t.width+x]
			run := x
			for run < t.width && t.colors[y*t.width+run] == col {
				run++
			}
			seg := string(t.glyphs[y*t.width+x : y*t.width+run])
			if t.profile != termenv.Ascii && (col.A > 0 || t.background.A > 0) {
				s := out.String(seg)
				if col.A > 0 {
					s = s.Foreground(t.profile.FromColor(col.Color()))
				}
				if t.background.A > 0 {
					s = s.Background(t.profile.FromColor(t.background.Color()))
				}
				b.WriteString(s.String())
			} else {
				b.WriteString(seg)
			}
			x = run
		}
		b.WriteByte('\n')
	}

	if err := t.frames.Write(b.String()); err != nil {
		a3d.Logger().Debug("render: frame write failed", "err", err)
	}
}

var (
	boxInk    = a3d.RGB(0.92, 0.92, 0.92)
	slabLight = scene.V3(0.4, 0.6, 1).Normalize()
)

var slabShades = [...]rune{'░', '▒', '▓', '█'}

func shadeGlyph(intensity float32) rune {
	idx := int(intensity * float32(len(slabShades)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(slabShades) {
		idx = len(slabShades) - 1
	}
	return slabShades[idx]
}

// pointGlyph picks a density glyph from the point color: dark pixels read
// as heavy ink.
func pointGlyph(c a3d.RGBA) rune {
	switch l := c.Luminance(); {
	case l < 1.0/3:
		return '@'
	case l < 2.0/3:
		return 'o'
	}
	return '.'
}

// depthShade darkens col with distance: the near plane keeps the color,
// the far plane fades 40% toward black.
func depthShade(col a3d.RGBA, z float32) a3d.RGBA {
	f := (z + 1) * 0.5
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return col.Lerp(a3d.Black, float64(f)*0.4)
}

func vertexAt(buf []float32, idx uint32) scene.Vector3 {
	i := int(idx) * 3
	return scene.V3(buf[i], buf[i+1], buf[i+2])
}

func clampCell(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit-1 {
		return limit - 1
	}
	return v
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }
func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }

func barycentric(v0, v1, v2 projected, px, py float32) (b0, b1, b2 float32, ok bool) {
	e0x, e0y := v2.x-v0.x, v2.y-v0.y
	e1x, e1y := v1.x-v0.x, v1.y-v0.y
	e2x, e2y := px-v0.x, py-v0.y

	dot00 := e0x*e0x + e0y*e0y
	dot01 := e0x*e1x + e0y*e1y
	dot02 := e0x*e2x + e0y*e2y
	dot11 := e1x*e1x + e1y*e1y
	dot12 := e1x*e2x + e1y*e2y

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return 0, 0, 0, false
	}
	u := (dot11*dot02 - dot01*dot12) / denom
	v := (dot00*dot12 - dot01*dot02) / denom
	return 1 - u - v, v, u, true
}
