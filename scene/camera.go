package scene

import "github.com/chewxy/math32"

// Camera is a perspective camera on the +Z axis looking at the origin.
// The animation loop rotates the scene group, not the camera, so only the
// distance and frustum parameters vary.
type Camera struct {
	FOV      float32 // vertical field of view, radians
	Aspect   float32 // viewport width / height
	Near     float32
	Far      float32
	Distance float32 // eye distance from the origin along +Z
}

// NewCamera creates a camera at the given distance with default frustum
// parameters. A distance of 0 leaves fitting to FitBounds.
func NewCamera(distance float32) *Camera {
	return &Camera{
		FOV:      math32.Pi / 4,
		Aspect:   1,
		Near:     0.1,
		Far:      2000,
		Distance: distance,
	}
}

// SetAspect updates the viewport proportions. Called on resize; cheap, no
// scene work involved.
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// FitBounds moves the camera back far enough that bounds fits the frustum
// with a small margin, if no explicit distance was configured.
func (c *Camera) FitBounds(b Box3) {
	if c.Distance != 0 || b.IsEmpty() {
		return
	}
	size := b.Size()
	radius := size.Length() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / math32.Tan(c.FOV/2) * 1.1
}

// Eye returns the camera position in scene space.
func (c *Camera) Eye() Vector3 {
	return Vector3{Z: c.Distance}
}

// ViewProjection returns the combined projection * view transform.
func (c *Camera) ViewProjection() Matrix4 {
	proj := Perspective(c.FOV, c.Aspect, c.Near, c.Far)
	view := LookAt(c.Eye(), Vector3{}, Vector3{Y: 1})
	return proj.Mul(view)
}
