package svgsource

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glyphforge/a3d"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">` +
	`<rect x="0" y="0" width="10" height="10" fill="#000000"/></svg>`

func TestLoadMarkup(t *testing.T) {
	pm, err := Source{Markup: squareSVG}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 10 || pm.Height() != 10 {
		t.Fatalf("pixmap = %dx%d, want 10x10", pm.Width(), pm.Height())
	}
	if lum := pm.Luminance(5, 5); lum > 0.1 {
		t.Errorf("center luminance = %v, want near 0 for a black fill", lum)
	}
}

func TestLoadMarkupWithDeclaration(t *testing.T) {
	markup := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<!-- generated -->` +
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 4"></svg>`
	pm, err := Source{Markup: markup}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 8 || pm.Height() != 4 {
		t.Errorf("pixmap = %dx%d, want 8x4", pm.Width(), pm.Height())
	}
	if lum := pm.Luminance(2, 2); lum != 1.0 {
		t.Errorf("empty canvas luminance = %v, want 1.0", lum)
	}
}

func TestLoadScalesToMaxEdge(t *testing.T) {
	markup := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4000 2000">` +
		`<rect width="4000" height="2000" fill="#123456"/></svg>`
	pm, err := Source{Markup: markup, MaxEdge: 100}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 100 || pm.Height() != 50 {
		t.Errorf("pixmap = %dx%d, want 100x50", pm.Width(), pm.Height())
	}
	if lum := pm.Luminance(50, 25); lum > 0.5 {
		t.Errorf("fill luminance = %v, want < 0.5", lum)
	}
}

func TestLoadNoDimensions(t *testing.T) {
	markup := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<circle cx="5" cy="5" r="5" fill="#000"/></svg>`
	pm, err := Source{Markup: markup}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != fallbackEdge || pm.Height() != fallbackEdge {
		t.Errorf("pixmap = %dx%d, want %dx%d", pm.Width(), pm.Height(), fallbackEdge, fallbackEdge)
	}
}

func TestLoadInvalidRoot(t *testing.T) {
	_, err := Source{Markup: `<div>not vector markup</div>`}.Load(context.Background())
	if !errors.Is(err, a3d.ErrInvalidMarkup) {
		t.Errorf("err = %v, want ErrInvalidMarkup", err)
	}
}

func TestLoadGarbage(t *testing.T) {
	_, err := Source{Markup: "neither markup nor an image"}.Load(context.Background())
	if !errors.Is(err, a3d.ErrInvalidMarkup) {
		t.Errorf("err = %v, want ErrInvalidMarkup", err)
	}
}

func TestLoadNoContent(t *testing.T) {
	if _, err := (Source{}).Load(context.Background()); !errors.Is(err, a3d.ErrNoContent) {
		t.Errorf("empty source err = %v, want ErrNoContent", err)
	}
	if _, err := (Source{Markup: "  \n\t"}).Load(context.Background()); !errors.Is(err, a3d.ErrNoContent) {
		t.Errorf("blank markup err = %v, want ErrNoContent", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.svg")
	if err := os.WriteFile(path, []byte(squareSVG), 0o644); err != nil {
		t.Fatal(err)
	}
	pm, err := Source{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 10 || pm.Height() != 10 {
		t.Errorf("pixmap = %dx%d, want 10x10", pm.Width(), pm.Height())
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := Source{Path: filepath.Join(t.TempDir(), "nope.svg")}.Load(context.Background())
	if !errors.Is(err, a3d.ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}

func TestLoadReportsStage(t *testing.T) {
	tests := []struct {
		name  string
		src   Source
		stage string
	}{
		{"missing file", Source{Path: "/does/not/exist.svg"}, "fetch"},
		{"wrong root", Source{Markup: `<div>nope</div>`}, "parse"},
		{"garbage", Source{Markup: "neither markup nor an image"}, "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.src.Load(context.Background())
			var se *a3d.SourceError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v, want *a3d.SourceError", err)
			}
			if se.Stage != tt.stage {
				t.Errorf("stage = %q, want %q", se.Stage, tt.stage)
			}
			if want := "a3d: source " + tt.stage; !strings.Contains(err.Error(), want) {
				t.Errorf("message %q does not name the stage %q", err, want)
			}
		})
	}
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(squareSVG))
	}))
	defer srv.Close()

	pm, err := Source{URL: srv.URL}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 10 || pm.Height() != 10 {
		t.Errorf("pixmap = %dx%d, want 10x10", pm.Width(), pm.Height())
	}
}

func TestLoadURLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Source{URL: srv.URL}.Load(context.Background())
	if !errors.Is(err, a3d.ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}

func TestLoadURLCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Source{URL: srv.URL}.Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if errors.Is(err, a3d.ErrFetchFailed) {
		t.Errorf("cancellation wrapped as ErrFetchFailed: %v", err)
	}
}

func TestLoadPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})

	path := filepath.Join(t.TempDir(), "tiny.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	pm, err := Source{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 3 || pm.Height() != 2 {
		t.Fatalf("pixmap = %dx%d, want 3x2", pm.Width(), pm.Height())
	}
	got := pm.GetPixel(0, 0)
	if got.R < 0.99 || got.G > 0.01 || got.B > 0.01 {
		t.Errorf("pixel (0,0) = %+v, want red", got)
	}
}

func TestLoadPNGScaled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	path := filepath.Join(t.TempDir(), "wide.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	pm, err := Source{Path: path, MaxEdge: 10}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 10 || pm.Height() != 5 {
		t.Errorf("pixmap = %dx%d, want 10x5", pm.Width(), pm.Height())
	}
}

func TestMarkupPrecedence(t *testing.T) {
	src := Source{
		Markup: squareSVG,
		Path:   filepath.Join(t.TempDir(), "never-read.svg"),
	}
	pm, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pm.Width() != 10 {
		t.Errorf("width = %d, want 10", pm.Width())
	}
}
