package vmath

import (
	"fmt"
	"math"
)

// Mat4 is a row-major 4x4 matrix. m[row][col].
type Mat4 [4]Vec4

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{Vec4UnitX(), Vec4UnitY(), Vec4UnitZ(), Vec4UnitW()}
}

// Zero returns the zero matrix.
func Zero() Mat4 {
	return Mat4{}
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for y := 0; y < 4; y++ {
		out[y] = m[y].Dot(v)
	}
	return out
}

// Mul returns m * o. The result applied to a vector applies o first, then m.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			var sum float32
			for i := 0; i < 4; i++ {
				sum += m[y][i] * o[i][x]
			}
			out[y][x] = sum
		}
	}
	return out
}

// Transpose returns m with rows and columns swapped.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			out[x][y] = m[y][x]
		}
	}
	return out
}

// SwapRows exchanges rows y1 and y2 in place.
func (m *Mat4) SwapRows(y1, y2 int) {
	m[y1], m[y2] = m[y2], m[y1]
}

// ScaleRow multiplies row y by s in place.
func (m *Mat4) ScaleRow(y int, s float32) {
	m[y] = m[y].Scale(s)
}

// AddRow adds s times row src to row dst in place.
func (m *Mat4) AddRow(dst, src int, s float32) {
	m[dst] = m[dst].Add(m[src].Scale(s))
}

// Inverse computes the inverse by Gauss-Jordan elimination on [m | I].
//
// A column with no non-zero entry at or below the current pivot row is
// skipped, so singular input yields a degenerate matrix rather than an error.
// Use InverseChecked to detect that case.
func (m Mat4) Inverse() Mat4 {
	inv, _ := m.InverseChecked()
	return inv
}

// InverseChecked is Inverse, also reporting whether all four pivots were found.
func (m Mat4) InverseChecked() (Mat4, bool) {
	me := m
	other := Identity()
	pivot := 0
	for x := 0; x < 4; x++ {
		for y := pivot; y < 4; y++ {
			if me[y][x] == 0 {
				continue
			}
			me.SwapRows(y, pivot)
			other.SwapRows(y, pivot)
			s := 1 / me[pivot][x]
			me.ScaleRow(pivot, s)
			other.ScaleRow(pivot, s)
			for y2 := pivot + 1; y2 < 4; y2++ {
				s := -me[y2][x]
				me.AddRow(y2, pivot, s)
				other.AddRow(y2, pivot, s)
			}
			pivot++
			break
		}
	}
	for x := 1; x < 4; x++ {
		for y := 0; y < x; y++ {
			s := -me[y][x]
			me.AddRow(y, x, s)
			other.AddRow(y, x, s)
		}
	}
	return other, pivot == 4
}

// Perspective builds a right-handed perspective projection from a vertical
// field of view in degrees.
func Perspective(near, far, fovDeg, aspect float32) Mat4 {
	d := fovScale(fovDeg)
	return Mat4{
		{d / aspect, 0, 0, 0},
		{0, d, 0, 0},
		{0, 0, (near + far) / (near - far), (2 * far) / (near - far)},
		{0, 0, -1, 0},
	}
}

// Orthographic builds an orthographic projection scaled like Perspective.
func Orthographic(near, far, fovDeg, aspect float32) Mat4 {
	d := fovScale(fovDeg)
	return Mat4{
		{d / aspect, 0, 0, 0},
		{0, d, 0, 0},
		{0, 0, -2 / (far - near), -(far + near) / (far - near)},
		{0, 0, 0, 1},
	}
}

func fovScale(fovDeg float32) float32 {
	fov := float64(fovDeg) * math.Pi / 180
	return float32(1 / math.Tan(fov/2))
}

// ViewDeg is View with pitch and yaw in degrees.
func ViewDeg(pitch, yaw float32, camera Vec3) Mat4 {
	return View(pitch*math.Pi/180, yaw*math.Pi/180, camera)
}

// View builds a right-handed look matrix from pitch and yaw in radians.
// There is no roll.
func View(pitch, yaw float32, camera Vec3) Mat4 {
	pc, ps := cosSin(pitch)
	yc, ys := cosSin(yaw)

	x := Vec3{yc, 0, -ys}
	y := Vec3{ys * ps, pc, yc * ps}
	z := Vec3{ys * pc, -ps, pc * yc}

	return Mat4{
		{x[0], x[1], x[2], -x.Dot(camera)},
		{y[0], y[1], y[2], -y.Dot(camera)},
		{z[0], z[1], z[2], -z.Dot(camera)},
		{0, 0, 0, 1},
	}
}

// Scale builds a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v[0], 0, 0, 0},
		{0, v[1], 0, 0},
		{0, 0, v[2], 0},
		{0, 0, 0, 1},
	}
}

// Translation builds a translation matrix.
func Translation(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v[0]},
		{0, 1, 0, v[1]},
		{0, 0, 1, v[2]},
		{0, 0, 0, 1},
	}
}

// Rotation composes Rz * Ry * Rx, so the X rotation applies first.
func Rotation(euler Vec3) Mat4 {
	return RotationZ(euler[2]).Mul(RotationY(euler[1])).Mul(RotationX(euler[0]))
}

func RotationX(rad float32) Mat4 {
	c, s := cosSin(rad)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

func RotationY(rad float32) Mat4 {
	c, s := cosSin(rad)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func RotationZ(rad float32) Mat4 {
	c, s := cosSin(rad)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func cosSin(rad float32) (float32, float32) {
	s, c := math.Sincos(float64(rad))
	return float32(c), float32(s)
}

// MatApproxEqual reports whether every element of a and b differs by at most eps.
func MatApproxEqual(a, b Mat4, eps float32) bool {
	for y := range a {
		if !ApproxEqual(a[y], b[y], eps) {
			return false
		}
	}
	return true
}

func (m Mat4) String() string {
	return fmt.Sprintf("%v\n%v\n%v\n%v", m[0], m[1], m[2], m[3])
}
