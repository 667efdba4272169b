package math

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrDegenerateTransform is returned when view or projection parameters
// cannot produce a finite matrix.
var ErrDegenerateTransform = errors.New("degenerate transform")

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// Matrices act on column vectors, so in a.Mul(b) the transform b is applied first.
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Compose builds a local transform T * Rx * Ry * Rz * S from position,
// Euler rotation (radians) and scale.
func Compose(position, rotation, scale Vec3) Mat4 {
	return Translate(position.X, position.Y, position.Z).
		Mul(RotateX(rotation.X)).
		Mul(RotateY(rotation.Y)).
		Mul(RotateZ(rotation.Z)).
		Mul(Scale(scale.X, scale.Y, scale.Z))
}

// LookAt returns a view matrix looking from eye to target.
// It fails when eye and target coincide or when up is parallel to the view direction.
func LookAt(eye, target, up Vec3) (Mat4, error) {
	dir := target.Sub(eye)
	if !(dir.Length() >= epsilon) {
		return Identity(), fmt.Errorf("look at: eye equals target %v: %w", eye, ErrDegenerateTransform)
	}
	f := dir.Normalize()
	side := f.Cross(up)
	if !(side.Length() >= epsilon) {
		return Identity(), fmt.Errorf("look at: up %v parallel to view direction: %w", up, ErrDegenerateTransform)
	}
	s := side.Normalize()
	u := s.Cross(f)

	return finite("look at", Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	})
}

// Perspective returns a perspective projection matrix.
// fovYDeg is the vertical field of view in degrees, aspect is width/height.
func Perspective(fovYDeg, aspect, near, far float32) (Mat4, error) {
	switch {
	case !(fovYDeg > 0 && fovYDeg < 180):
		return Identity(), fmt.Errorf("perspective: fov %v out of range: %w", fovYDeg, ErrDegenerateTransform)
	case !(aspect > 0):
		return Identity(), fmt.Errorf("perspective: aspect %v: %w", aspect, ErrDegenerateTransform)
	case !(near > 0):
		return Identity(), fmt.Errorf("perspective: near %v: %w", near, ErrDegenerateTransform)
	case !(far > near):
		return Identity(), fmt.Errorf("perspective: far %v <= near %v: %w", far, near, ErrDegenerateTransform)
	}

	f := 1 / math32.Tan(Radians(fovYDeg)/2)
	nf := 1 / (near - far)

	return finite("perspective", Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	})
}

// Ortho returns an orthographic projection matrix.
// left, right, bottom, top define the view volume; near and far the depth range.
func Ortho(left, right, bottom, top, near, far float32) (Mat4, error) {
	switch {
	case right == left || top == bottom:
		return Identity(), fmt.Errorf("ortho: empty view volume: %w", ErrDegenerateTransform)
	case !(near > 0):
		return Identity(), fmt.Errorf("ortho: near %v: %w", near, ErrDegenerateTransform)
	case !(far > near):
		return Identity(), fmt.Errorf("ortho: far %v <= near %v: %w", far, near, ErrDegenerateTransform)
	}

	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)

	return finite("ortho", Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	})
}

func finite(op string, m Mat4) (Mat4, error) {
	if !m.IsFinite() {
		return Identity(), fmt.Errorf("%s: non-finite matrix: %w", op, ErrDegenerateTransform)
	}
	return m, nil
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformPoint transforms a point by this matrix (w=1), with perspective divide.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// IsFinite reports whether no element is NaN or infinite.
func (m Mat4) IsFinite() bool {
	for _, v := range m {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
