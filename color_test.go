package a3d

import (
	"image/color"
	"math"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGBA
	}{
		{"short rgb", "#f00", RGBA{R: 1, G: 0, B: 0, A: 1}},
		{"short rgba", "#f008", RGBA{R: 1, G: 0, B: 0, A: 136.0 / 255}},
		{"full rgb", "#00ff00", RGBA{R: 0, G: 1, B: 0, A: 1}},
		{"full rgba", "#0000ff80", RGBA{R: 0, G: 0, B: 1, A: 128.0 / 255}},
		{"no hash", "ffffff", RGBA{R: 1, G: 1, B: 1, A: 1}},
		{"uppercase", "#FF00FF", RGBA{R: 1, G: 0, B: 1, A: 1}},
		{"invalid length", "#ff", RGBA{R: 0, G: 0, B: 0, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if !colorsClose(got, tt.want) {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	want := RGBA{R: 1, G: 0, B: 0, A: 1}
	if !colorsClose(got, want) {
		t.Errorf("FromColor(red) = %+v, want %+v", got, want)
	}
}

func TestColorRoundTrip(t *testing.T) {
	orig := RGBA{R: 0.5, G: 0.25, B: 0.75, A: 1}
	got := FromColor(orig.Color())
	if !colorsClose(got, orig) {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestColorLuminanceWeights(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want float64
	}{
		{"black", Black, 0},
		{"white", White, 1},
		{"red", Red, 0.299},
		{"green", Green, 0.587},
		{"blue", Blue, 0.114},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Luminance(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Luminance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	want := RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if !colorsClose(got, want) {
		t.Errorf("Black.Lerp(White, 0.5) = %+v, want %+v", got, want)
	}

	if got := Black.Lerp(White, 0); !colorsClose(got, Black) {
		t.Errorf("Lerp(t=0) = %+v, want start color", got)
	}
	if got := Black.Lerp(White, 1); !colorsClose(got, White) {
		t.Errorf("Lerp(t=1) = %+v, want end color", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// colorsClose compares colors with a small tolerance for 8-bit rounding.
func colorsClose(a, b RGBA) bool {
	const eps = 1.0 / 254
	return math.Abs(a.R-b.R) < eps &&
		math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps &&
		math.Abs(a.A-b.A) < eps
}
