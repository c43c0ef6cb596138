// Package render projects scene groups onto an output surface. Target is
// the boundary the viewer drives; the package ships one implementation, a
// software renderer that rasterizes primitives into a terminal character
// grid. Hosts with a real graphics stack implement Target around their
// own engine instead.
package render

import "github.com/glyphforge/a3d/scene"

// Target is a surface the viewer renders into.
//
// Implementations must tolerate being driven from the viewer's tick
// goroutine: Render is called repeatedly, Resize between frames, Release
// exactly once at teardown (later calls must be no-ops). Render must
// never panic; a frame that cannot be drawn is dropped.
type Target interface {
	// Resize updates the surface dimensions. Units are implementation
	// defined; the terminal target takes character cells.
	Resize(width, height int)

	// Render draws one frame of the group as seen by the camera.
	Render(g *scene.Group, cam *scene.Camera)

	// Release frees the surface. Further Render calls are no-ops.
	Release()
}
