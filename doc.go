// Package a3d converts vector artwork into character-grid art and extruded
// glyph geometry.
//
// # Overview
//
// a3d takes a rasterized pixel buffer (typically produced from SVG markup by
// the svgsource sub-package), reduces it to a grid of glyphs drawn from an
// ordered character ramp, and optionally assembles that grid into a 3D scene
// of extruded glyph boxes or sampled points. The scene can be handed to any
// renderer implementing the render.Target interface; a terminal projector is
// included.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/glyphforge/a3d"
//	    "github.com/glyphforge/a3d/svgsource"
//	)
//
//	// Rasterize vector markup into a pixel buffer.
//	pm, err := svgsource.Source{Path: "logo.svg"}.Load(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Reduce it to a character grid.
//	grid, err := a3d.Convert(pm, a3d.WithWidth(100), a3d.WithEdgeEnhance(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(grid.Text)
//
// # Architecture
//
// The library is organized into:
//   - Root: pixel buffers, color, character ramps, the conversion pipeline
//   - svgsource: markup acquisition and rasterization (inline, file, URL)
//   - scene: glyph geometry assembly with per-scene resource caching
//   - render: the Target interface and a terminal projection renderer
//   - viewer: lifecycle management and the animation loop
//
// # Coordinate System
//
// Pixel buffers and character grids use image coordinates: origin (0,0) at
// top-left, X right, Y down. Scenes use right-handed world coordinates with
// Y up; the scene builder flips rows accordingly.
package a3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
