package a3d

// Ramp is an ordered sequence of glyphs from darkest to lightest. A
// luminance value selects a glyph by linear index, so the first rune
// renders the darkest cells and the last the lightest.
//
// A usable ramp has at least two runes; Convert rejects shorter ones with
// ErrInvalidRamp.
type Ramp []rune

// NewRamp builds a ramp from a string, one glyph per rune.
func NewRamp(s string) (Ramp, error) {
	r := Ramp(s)
	if len(r) < 2 {
		return nil, ErrInvalidRamp
	}
	return r, nil
}

// Glyph maps a luminance value in [0, 1] to a glyph. Values outside the
// range clamp to the darkest or lightest glyph.
func (r Ramp) Glyph(l float64) rune {
	n := len(r)
	idx := int(l * float64(n-1))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return r[idx]
}

// String returns the ramp as a string, darkest glyph first.
func (r Ramp) String() string { return string(r) }

// Built-in ramps.
var (
	// RampDetailed is a 70-level ramp suited to large grids.
	RampDetailed = Ramp("$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. ")

	// RampStandard is the default 10-level ramp.
	RampStandard = Ramp("@%#*+=-:. ")

	// RampSimple is a coarse 5-level ramp.
	RampSimple = Ramp("#+-. ")

	// RampBlocks uses block elements for a filled, low-detail look.
	RampBlocks = Ramp("█▓▒░ ")

	// RampMinimal is a binary ink-or-space ramp.
	RampMinimal = Ramp("@ ")
)

// RampNamed returns a built-in ramp by name ("detailed", "standard",
// "simple", "blocks", "minimal"). The second result reports whether the
// name was recognized.
func RampNamed(name string) (Ramp, bool) {
	switch name {
	case "detailed":
		return RampDetailed, true
	case "standard":
		return RampStandard, true
	case "simple":
		return RampSimple, true
	case "blocks":
		return RampBlocks, true
	case "minimal":
		return RampMinimal, true
	}
	return nil, false
}
