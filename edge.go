package a3d

import "math"

// Sobel kernels for horizontal and vertical gradient estimation.
var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// enhanceEdges darkens cells that sit on luminance gradients. The result is
// written to a fresh grid so every kernel reads pre-pass values regardless
// of traversal order. Border cells have no full 3x3 neighborhood and are
// copied unchanged; grids narrower than 3 cells in either dimension pass
// through whole.
func enhanceEdges(g *lumGrid) *lumGrid {
	out := newLumGrid(g.w, g.h)
	copy(out.v, g.v)
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					l := g.at(x+kx, y+ky)
					gx += l * sobelX[ky+1][kx+1]
					gy += l * sobelY[ky+1][kx+1]
				}
			}
			mag := math.Sqrt(gx*gx + gy*gy)
			out.set(x, y, clamp01(g.at(x, y)-0.5*mag))
		}
	}
	return out
}
