package scene

import "github.com/chewxy/math32"

// Matrix4 is a 4x4 transform in column-major order: element (row, col) is
// stored at index col*4+row, matching the usual GPU layout.
type Matrix4 [16]float32

// Identity returns the identity transform.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the product m * o, applying o first.
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Translation returns a translation transform.
func Translation(x, y, z float32) Matrix4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// RotationX returns a rotation about the X axis by angle radians.
func RotationX(angle float32) Matrix4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[5], m[9] = c, -s
	m[6], m[10] = s, c
	return m
}

// RotationY returns a rotation about the Y axis by angle radians.
func RotationY(angle float32) Matrix4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[0], m[8] = c, s
	m[2], m[10] = -s, c
	return m
}

// RotationZ returns a rotation about the Z axis by angle radians.
func RotationZ(angle float32) Matrix4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[0], m[4] = c, -s
	m[1], m[5] = s, c
	return m
}

// RotationEuler composes intrinsic X, then Y, then Z rotations from the
// Euler angles in r.
func RotationEuler(r Vector3) Matrix4 {
	return RotationZ(r.Z).Mul(RotationY(r.Y)).Mul(RotationX(r.X))
}

// Perspective returns a right-handed perspective projection. fovY is the
// vertical field of view in radians; depth maps to clip z in [-1, 1].
func Perspective(fovY, aspect, near, far float32) Matrix4 {
	f := 1 / math32.Tan(fovY/2)
	var m Matrix4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// LookAt returns a view transform placing the camera at eye, looking at
// target, with up approximating the camera's up direction.
func LookAt(eye, target, up Vector3) Matrix4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	var m Matrix4
	m[0], m[4], m[8] = s.X, s.Y, s.Z
	m[1], m[5], m[9] = u.X, u.Y, u.Z
	m[2], m[6], m[10] = -f.X, -f.Y, -f.Z
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	m[15] = 1
	return m
}

// TransformDirection applies m to the direction v, ignoring translation.
func (m Matrix4) TransformDirection(v Vector3) Vector3 {
	return Vector3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// TransformPoint applies m to the point v and returns the transformed
// coordinates together with the homogeneous w component. Callers divide by
// w to project.
func (m Matrix4) TransformPoint(v Vector3) (Vector3, float32) {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	return Vector3{X: x, Y: y, Z: z}, w
}
