package a3d

// ConvertOption configures a Convert call.
// Use functional options to customize conversion behavior.
//
// Example:
//
//	// Defaults: standard ramp, width 80, aspect-corrected height
//	grid, err := a3d.Convert(pm)
//
//	// High-detail inverted conversion at a fixed size
//	grid, err := a3d.Convert(pm,
//	    a3d.WithRamp(a3d.RampDetailed),
//	    a3d.WithWidth(120),
//	    a3d.WithInvert(true))
type ConvertOption func(*convertOptions)

// convertOptions holds optional configuration for a conversion.
type convertOptions struct {
	ramp           Ramp
	width          int // 0 = derive
	height         int // 0 = derive
	maintainAspect bool
	contrast       float64
	invert         bool
	edgeEnhance    bool
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() convertOptions {
	return convertOptions{
		ramp:           RampStandard,
		maintainAspect: true,
		contrast:       1.0,
	}
}

// WithRamp sets the character ramp, ordered darkest to lightest.
func WithRamp(r Ramp) ConvertOption {
	return func(o *convertOptions) {
		o.ramp = r
	}
}

// WithWidth sets the grid width in cells. When the height is left unset it
// is derived from the source proportions.
func WithWidth(w int) ConvertOption {
	return func(o *convertOptions) {
		o.width = w
	}
}

// WithHeight sets the grid height in cells. When the width is left unset it
// is derived from the source proportions.
func WithHeight(h int) ConvertOption {
	return func(o *convertOptions) {
		o.height = h
	}
}

// WithMaintainAspect controls whether a derived dimension compensates for
// the tall shape of terminal glyph cells. On by default; turning it off
// derives the missing dimension from raw pixel proportions instead.
func WithMaintainAspect(keep bool) ConvertOption {
	return func(o *convertOptions) {
		o.maintainAspect = keep
	}
}

// WithContrast sets the contrast factor applied to cell luminance around the
// 0.5 midpoint. 1.0 (the default) leaves luminance untouched; values above
// push cells toward the ramp extremes.
func WithContrast(c float64) ConvertOption {
	return func(o *convertOptions) {
		o.contrast = c
	}
}

// WithInvert flips luminance so dark source areas map to light glyphs.
// Useful on dark terminal backgrounds.
func WithInvert(inv bool) ConvertOption {
	return func(o *convertOptions) {
		o.invert = inv
	}
}

// WithEdgeEnhance enables the gradient pass that darkens cells along
// luminance edges, making outlines read more clearly.
func WithEdgeEnhance(on bool) ConvertOption {
	return func(o *convertOptions) {
		o.edgeEnhance = on
	}
}
