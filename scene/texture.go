package scene

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/glyphforge/a3d"
)

// TileSize is the edge length in pixels of a glyph texture tile.
const TileSize = 64

// Texture is a rasterized glyph tile painted onto box primitives.
type Texture struct {
	Glyph rune
	Pix   *a3d.Pixmap

	released bool
}

// Release frees the tile pixels. Safe to call more than once.
func (t *Texture) Release() {
	t.Pix = nil
	t.released = true
}

// Released reports whether Release has run.
func (t *Texture) Released() bool { return t.released }

// Tile glyphs are set in Latin Modern Mono, parsed once per process. The
// face is not safe for concurrent use, so drawing is serialized.
var (
	tileFontOnce sync.Once
	tileFontErr  error
	tileFace     font.Face
	tileFaceMu   sync.Mutex
)

func tileFontFace() (font.Face, error) {
	tileFontOnce.Do(func() {
		fnt, err := opentype.Parse(lmmono10regular.TTF)
		if err != nil {
			tileFontErr = fmt.Errorf("scene: parse glyph font: %w", err)
			return
		}
		tileFace, tileFontErr = opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    TileSize * 0.75,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return tileFace, tileFontErr
}

// renderGlyphTile rasterizes one glyph centered in a square tile: a
// near-white vertical gradient background, a faint offset shadow, then
// the glyph itself in the ink color.
func renderGlyphTile(glyph rune, ink a3d.RGBA) (*Texture, error) {
	face, err := tileFontFace()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	fillTileBackground(img)

	tileFaceMu.Lock()
	defer tileFaceMu.Unlock()

	s := string(glyph)
	d := &font.Drawer{Dst: img, Face: face}
	adv := d.MeasureString(s)
	x := (TileSize - adv.Round()) / 2
	y := TileSize * 3 / 4

	// Shadow first, offset down-right for apparent depth.
	d.Src = image.NewUniform(color.NRGBA{R: 30, G: 30, B: 30, A: 90})
	d.Dot = fixed.Point26_6{X: fixed.Int26_6((x + 2) * 64), Y: fixed.Int26_6((y + 2) * 64)}
	d.DrawString(s)

	d.Src = image.NewUniform(ink.Color())
	d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	d.DrawString(s)

	return &Texture{Glyph: glyph, Pix: a3d.FromImage(img)}, nil
}

// fillTileBackground paints a vertical near-white gradient, slightly
// darker toward the bottom.
func fillTileBackground(img *image.RGBA) {
	for y := 0; y < TileSize; y++ {
		t := float64(y) / (TileSize - 1)
		v := uint8(250 - t*18)
		c := color.RGBA{R: v, G: v, B: v, A: 255}
		for x := 0; x < TileSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
