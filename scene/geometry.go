package scene

// Geometry holds an indexed triangle mesh: packed vertex positions and
// normals (xyz triples), texture coordinates (uv pairs), and a triangle
// index. Instances are created through a group's resource cache and
// released exactly once when the group is disposed.
type Geometry struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint32

	released bool
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Positions) / 3 }

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int { return len(g.Indices) / 3 }

// Release frees the mesh buffers. Safe to call more than once.
func (g *Geometry) Release() {
	g.Positions, g.Normals, g.TexCoords, g.Indices = nil, nil, nil, nil
	g.released = true
}

// Released reports whether Release has run.
func (g *Geometry) Released() bool { return g.released }

// addQuad appends one rectangular face as two triangles. Corners a-b-c-d
// wind counter-clockwise seen from the normal side; uv covers the full
// tile per face.
func (g *Geometry) addQuad(a, b, c, d, normal Vector3) {
	base := uint32(g.VertexCount()) //nolint:gosec // vertex counts stay far below 2^32
	for _, p := range [4]Vector3{a, b, c, d} {
		g.Positions = append(g.Positions, p.X, p.Y, p.Z)
		g.Normals = append(g.Normals, normal.X, normal.Y, normal.Z)
	}
	g.TexCoords = append(g.TexCoords,
		0, 1,
		1, 1,
		1, 0,
		0, 0)
	g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
}

// NewBoxGeometry builds an axis-aligned box centered on the origin with
// per-face normals. The front face looks toward +Z.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	g := &Geometry{}
	hw, hh, hd := width/2, height/2, depth/2

	g.addQuad(V3(-hw, -hh, hd), V3(hw, -hh, hd), V3(hw, hh, hd), V3(-hw, hh, hd), V3(0, 0, 1))    // front
	g.addQuad(V3(hw, -hh, -hd), V3(-hw, -hh, -hd), V3(-hw, hh, -hd), V3(hw, hh, -hd), V3(0, 0, -1)) // back
	g.addQuad(V3(hw, -hh, hd), V3(hw, -hh, -hd), V3(hw, hh, -hd), V3(hw, hh, hd), V3(1, 0, 0))    // right
	g.addQuad(V3(-hw, -hh, -hd), V3(-hw, -hh, hd), V3(-hw, hh, hd), V3(-hw, hh, -hd), V3(-1, 0, 0)) // left
	g.addQuad(V3(-hw, hh, hd), V3(hw, hh, hd), V3(hw, hh, -hd), V3(-hw, hh, -hd), V3(0, 1, 0))    // top
	g.addQuad(V3(-hw, -hh, -hd), V3(hw, -hh, -hd), V3(hw, -hh, hd), V3(-hw, -hh, hd), V3(0, -1, 0)) // bottom
	return g
}

// NewSlabGeometry builds a rectangular slab centered on the origin whose
// front rim is chamfered by bevel: the sides stop short of the front
// plane and a ring of slanted faces connects them to an inset front cap.
// Bevel is clamped so the cap never degenerates.
func NewSlabGeometry(width, height, depth, bevel float32) *Geometry {
	b := bevel
	if b < 0 {
		b = 0
	}
	if limit := min32(width/4, height/4, depth/2); b > limit {
		b = limit
	}

	g := &Geometry{}
	hw, hh, hd := width/2, height/2, depth/2
	zo := hd - b    // front rim depth before the chamfer
	iw, ih := hw-b, hh-b // inset front cap half extents

	// back
	g.addQuad(V3(hw, -hh, -hd), V3(-hw, -hh, -hd), V3(-hw, hh, -hd), V3(hw, hh, -hd), V3(0, 0, -1))

	// sides, stopping at the chamfer ring
	g.addQuad(V3(hw, -hh, zo), V3(hw, -hh, -hd), V3(hw, hh, -hd), V3(hw, hh, zo), V3(1, 0, 0))
	g.addQuad(V3(-hw, -hh, -hd), V3(-hw, -hh, zo), V3(-hw, hh, zo), V3(-hw, hh, -hd), V3(-1, 0, 0))
	g.addQuad(V3(-hw, hh, zo), V3(hw, hh, zo), V3(hw, hh, -hd), V3(-hw, hh, -hd), V3(0, 1, 0))
	g.addQuad(V3(-hw, -hh, -hd), V3(hw, -hh, -hd), V3(hw, -hh, zo), V3(-hw, -hh, zo), V3(0, -1, 0))

	if b > 0 {
		// chamfer ring: trapezoids from the outer rim to the inset cap
		nx := V3(1, 0, 1).Normalize()
		g.addQuad(V3(hw, -hh, zo), V3(hw, hh, zo), V3(iw, ih, hd), V3(iw, -ih, hd), nx)
		nx = V3(-1, 0, 1).Normalize()
		g.addQuad(V3(-hw, hh, zo), V3(-hw, -hh, zo), V3(-iw, -ih, hd), V3(-iw, ih, hd), nx)
		ny := V3(0, 1, 1).Normalize()
		g.addQuad(V3(hw, hh, zo), V3(-hw, hh, zo), V3(-iw, ih, hd), V3(iw, ih, hd), ny)
		ny = V3(0, -1, 1).Normalize()
		g.addQuad(V3(-hw, -hh, zo), V3(hw, -hh, zo), V3(iw, -ih, hd), V3(-iw, -ih, hd), ny)
	}

	// front cap
	g.addQuad(V3(-iw, -ih, hd), V3(iw, -ih, hd), V3(iw, ih, hd), V3(-iw, ih, hd), V3(0, 0, 1))
	return g
}

func min32(vals ...float32) float32 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
