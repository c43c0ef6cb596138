package main

import (
	"io"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/glyphforge/a3d"
)

func colorTestPixmap() *a3d.Pixmap {
	// Left column red, right column blue.
	pm := a3d.NewPixmap(2, 2)
	for y := 0; y < 2; y++ {
		pm.SetPixel(0, y, a3d.RGBA{R: 1, A: 1})
		pm.SetPixel(1, y, a3d.RGBA{B: 1, A: 1})
	}
	return pm
}

func TestColorizeGrid(t *testing.T) {
	pm := colorTestPixmap()
	grid, err := a3d.Convert(pm,
		a3d.WithWidth(2), a3d.WithHeight(1), a3d.WithRamp(a3d.RampMinimal))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	out := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.TrueColor))
	got := colorizeGrid(grid, pm, out)

	if !strings.Contains(got, "\x1b[") {
		t.Errorf("output %q carries no color escapes", got)
	}
	if strings.Count(got, "@") != 2 {
		t.Errorf("output %q lost grid glyphs, want two @", got)
	}
	// Differently colored columns cannot share one styled run.
	if strings.Count(got, "\x1b[0m") < 2 {
		t.Errorf("output %q = one run, want separate runs per color", got)
	}
}

func TestColorizeGridAsciiProfile(t *testing.T) {
	pm := colorTestPixmap()
	grid, err := a3d.Convert(pm,
		a3d.WithWidth(2), a3d.WithHeight(1), a3d.WithRamp(a3d.RampMinimal))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	out := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))
	if got := colorizeGrid(grid, pm, out); got != grid.Text {
		t.Errorf("ascii profile output = %q, want plain %q", got, grid.Text)
	}
}
