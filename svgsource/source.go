// Package svgsource loads vector markup from inline text, the filesystem,
// or a URL and rasterizes it into an a3d.Pixmap. Raster images are
// accepted as a fallback so PNG, JPEG, and GIF references work through the
// same path.
package svgsource

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/glyphforge/a3d"
)

const (
	// defaultMaxEdge caps the rasterized buffer. Conversion reduces to a
	// character grid anyway, so bigger buffers only cost memory.
	defaultMaxEdge = 1024

	// fallbackEdge sizes markup that declares no viewBox and no
	// width or height.
	fallbackEdge = 512
)

var defaultClient = &http.Client{Timeout: 30 * time.Second}

// Source locates content to rasterize. Exactly one of Markup, Path, or
// URL should be set; when several are, Markup wins over Path over URL.
type Source struct {
	// Markup is inline vector markup.
	Markup string

	// Path names a local markup or image file.
	Path string

	// URL fetches the content over HTTP.
	URL string

	// MaxEdge caps the longest side of the rasterized buffer. Zero uses
	// the package default.
	MaxEdge int

	// Client overrides the HTTP client used for URL fetches.
	Client *http.Client
}

// Load resolves and rasterizes the content. Failures come back as an
// *a3d.SourceError naming the stage and unwrap to the stage's pipeline
// sentinel; context cancellation is returned as is.
func (s Source) Load(ctx context.Context) (*a3d.Pixmap, error) {
	data, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, a3d.ErrNoContent
	}

	if root, ok := xmlRoot(data); ok {
		if root != "svg" {
			return nil, &a3d.SourceError{Stage: "parse",
				Err: fmt.Errorf("%w: root element <%s>", a3d.ErrInvalidMarkup, root)}
		}
		return rasterize(ctx, data, s.maxEdge())
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &a3d.SourceError{Stage: "parse",
			Err: fmt.Errorf("%w: %w", a3d.ErrInvalidMarkup, err)}
	}
	return fromRaster(img, format, s.maxEdge()), nil
}

func (s Source) maxEdge() int {
	if s.MaxEdge > 0 {
		return s.MaxEdge
	}
	return defaultMaxEdge
}

func (s Source) fetch(ctx context.Context) ([]byte, error) {
	switch {
	case s.Markup != "":
		return []byte(s.Markup), nil

	case s.Path != "":
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fetchError(err)
		}
		return data, nil

	case s.URL != "":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			return nil, fetchError(err)
		}
		client := s.Client
		if client == nil {
			client = defaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fetchError(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fetchError(fmt.Errorf("%s returned %s", s.URL, resp.Status))
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fetchError(err)
		}
		return data, nil
	}
	return nil, a3d.ErrNoContent
}

func fetchError(err error) error {
	return &a3d.SourceError{Stage: "fetch", Err: fmt.Errorf("%w: %w", a3d.ErrFetchFailed, err)}
}

// xmlRoot reports the local name of the first element when data parses as
// XML. Binary formats fail the token scan and report false.
func xmlRoot(data []byte) (string, bool) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, true
		}
	}
}

// rasterize draws parsed markup into a pixel buffer sized from its
// viewBox, scaled down when the longest edge exceeds maxEdge.
func rasterize(ctx context.Context, markup []byte, maxEdge int) (*a3d.Pixmap, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, &a3d.SourceError{Stage: "parse",
			Err: fmt.Errorf("%w: %w", a3d.ErrInvalidMarkup, err)}
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = fallbackEdge, fallbackEdge
	}
	scale := 1.0
	if longest := max(w, h); longest > float64(maxEdge) {
		scale = float64(maxEdge) / longest
	}
	pw := int(w*scale + 0.5)
	ph := int(h*scale + 0.5)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	scanner := rasterx.NewScannerGV(pw, ph, img, img.Bounds())
	raster := rasterx.NewDasher(pw, ph, scanner)
	icon.SetTarget(0, 0, float64(pw), float64(ph))
	if err := draw(icon, raster); err != nil {
		return nil, &a3d.SourceError{Stage: "rasterize",
			Err: fmt.Errorf("%w: %w", a3d.ErrRasterizationFailed, err)}
	}

	a3d.Logger().Debug("svgsource: rasterized markup", "width", pw, "height", ph)
	return a3d.FromImage(img), nil
}

// draw recovers rasterizer panics on malformed path data so they surface
// as errors instead of crashing the caller.
func draw(icon *oksvg.SvgIcon, r *rasterx.Dasher) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	icon.Draw(r, 1.0)
	return nil
}

// fromRaster adapts a decoded bitmap, downscaling when it exceeds maxEdge.
func fromRaster(img image.Image, format string, maxEdge int) *a3d.Pixmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if longest := max(w, h); longest > maxEdge {
		scale := float64(maxEdge) / float64(longest)
		nw := int(float64(w)*scale + 0.5)
		nh := int(float64(h)*scale + 0.5)
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		a3d.Logger().Warn("svgsource: scaling oversized image",
			"format", format, "width", w, "height", h, "max_edge", maxEdge)
		img = transform.Resize(img, nw, nh, transform.Linear)
	}
	return a3d.FromImage(img)
}
