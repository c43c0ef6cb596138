package a3d

// lumGrid holds per-cell luminance in [0, 1], row-major.
type lumGrid struct {
	w, h int
	v    []float64
}

func newLumGrid(w, h int) *lumGrid {
	return &lumGrid{w: w, h: h, v: make([]float64, w*h)}
}

func (g *lumGrid) at(x, y int) float64     { return g.v[y*g.w+x] }
func (g *lumGrid) set(x, y int, l float64) { g.v[y*g.w+x] = l }

// reduceLuminance maps the source pixels onto a w by h cell grid. Each cell
// averages its source rectangle channel-wise, weights the result
// 0.299/0.587/0.114, scales by alpha and composites against a white
// background, then applies the configured contrast and inversion.
//
// Cell rectangles are computed with floor boundaries so every source pixel
// belongs to exactly one cell. When the grid outsizes the source a cell's
// rectangle can be empty; such cells read as background.
func reduceLuminance(pm *Pixmap, w, h int, o *convertOptions) *lumGrid {
	g := newLumGrid(w, h)
	sw, sh := pm.Width(), pm.Height()
	for ty := 0; ty < h; ty++ {
		y0 := ty * sh / h
		y1 := (ty + 1) * sh / h
		for tx := 0; tx < w; tx++ {
			x0 := tx * sw / w
			x1 := (tx + 1) * sw / w
			l := cellLuminance(pm, x0, y0, x1, y1)
			if o.contrast != 1.0 {
				l = clamp01((l-0.5)*o.contrast + 0.5)
			}
			if o.invert {
				l = 1 - l
			}
			g.set(tx, ty, l)
		}
	}
	return g
}

// CellColors averages the source pixels onto a w by h cell grid and returns
// the per-cell colors as rows, top to bottom. Cells are partitioned exactly
// as Convert partitions them, so the result lines up with a grid converted
// from the same buffer at the same dimensions. Cells with no source pixels
// read as transparent. Colorizing grid text is the intended use.
func CellColors(pm *Pixmap, w, h int) [][]RGBA {
	if pm == nil || pm.width <= 0 || pm.height <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	sw, sh := pm.width, pm.height
	rows := make([][]RGBA, h)
	for ty := 0; ty < h; ty++ {
		row := make([]RGBA, w)
		y0 := ty * sh / h
		y1 := (ty + 1) * sh / h
		for tx := 0; tx < w; tx++ {
			x0 := tx * sw / w
			x1 := (tx + 1) * sw / w
			row[tx] = cellColor(pm, x0, y0, x1, y1)
		}
		rows[ty] = row
	}
	return rows
}

// cellColor averages one cell rectangle channel-wise. Empty rectangles read
// as transparent.
func cellColor(pm *Pixmap, x0, y0, x1, y1 int) RGBA {
	if x1 <= x0 || y1 <= y0 {
		return Transparent
	}
	var r, g, b, a float64
	for y := y0; y < y1; y++ {
		i := (y*pm.width + x0) * 4
		for x := x0; x < x1; x++ {
			r += float64(pm.data[i+0])
			g += float64(pm.data[i+1])
			b += float64(pm.data[i+2])
			a += float64(pm.data[i+3])
			i += 4
		}
	}
	n := float64((x1-x0)*(y1-y0)) * 255
	return RGBA{R: r / n, G: g / n, B: b / n, A: a / n}
}

// cellLuminance averages the pixels of one cell rectangle and reduces them
// to a single luminance value. Empty rectangles read as background (1.0).
func cellLuminance(pm *Pixmap, x0, y0, x1, y1 int) float64 {
	if x1 <= x0 || y1 <= y0 {
		return 1.0
	}
	var r, g, b, a float64
	for y := y0; y < y1; y++ {
		i := (y*pm.width + x0) * 4
		for x := x0; x < x1; x++ {
			r += float64(pm.data[i+0])
			g += float64(pm.data[i+1])
			b += float64(pm.data[i+2])
			a += float64(pm.data[i+3])
			i += 4
		}
	}
	n := float64((x1 - x0) * (y1 - y0))
	r, g, b = r/n, g/n, b/n
	av := a / n / 255
	l := (0.299*r + 0.587*g + 0.114*b) * av
	if av < 1 {
		l += 255 * (1 - av)
	}
	return l / 255
}
