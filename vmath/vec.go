package vmath

import (
	"fmt"
	"math"
)

// Vec2 is a 2-component vector.
type Vec2 [2]float32

// Vec3 is a 3-component vector.
type Vec3 [3]float32

// Vec4 is a 4-component vector, usually homogeneous (x, y, z, w).
type Vec4 [4]float32

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v[0] + o[0], v[1] + o[1]} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v[0] - o[0], v[1] - o[1]} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v[0] * o[0], v[1] * o[1]} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v[0] * s, v[1] * s} }
func (v Vec2) Dot(o Vec2) float32 { return v[0]*o[0] + v[1]*o[1] }

// Vec3 widens v with z.
func (v Vec2) Vec3(z float32) Vec3 { return Vec3{v[0], v[1], z} }

// Vec4 widens v with z and w.
func (v Vec2) Vec4(z, w float32) Vec4 { return Vec4{v[0], v[1], z, w} }

func (v Vec2) String() string { return fmt.Sprintf("(%g, %g)", v[0], v[1]) }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v[0] * o[0], v[1] * o[1], v[2] * o[2]} }
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v Vec3) Dot(o Vec3) float32 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

// Vec2 drops z.
func (v Vec3) Vec2() Vec2 { return Vec2{v[0], v[1]} }

// Vec4 widens v with w.
func (v Vec3) Vec4(w float32) Vec4 { return Vec4{v[0], v[1], v[2], w} }

// Len returns the euclidean length.
func (v Vec3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

func (v Vec3) String() string { return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2]) }

func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

func (v Vec4) Mul(o Vec4) Vec4 {
	return Vec4{v[0] * o[0], v[1] * o[1], v[2] * o[2], v[3] * o[3]}
}

func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

func (v Vec4) Dot(o Vec4) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] + v[3]*o[3]
}

// Vec3 drops w.
func (v Vec4) Vec3() Vec3 { return Vec3{v[0], v[1], v[2]} }

// Vec2 drops z and w.
func (v Vec4) Vec2() Vec2 { return Vec2{v[0], v[1]} }

// Homogenize divides x, y, z by w. A zero w is returned unchanged.
func (v Vec4) Homogenize() Vec3 {
	if v[3] == 0 {
		return v.Vec3()
	}
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

func (v Vec4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v[0], v[1], v[2], v[3])
}

func Vec4Zero() Vec4 { return Vec4{} }
func Vec4One() Vec4 { return Vec4{1, 1, 1, 1} }
func Vec4UnitX() Vec4 { return Vec4{1, 0, 0, 0} }
func Vec4UnitY() Vec4 { return Vec4{0, 1, 0, 0} }
func Vec4UnitZ() Vec4 { return Vec4{0, 0, 1, 0} }
func Vec4UnitW() Vec4 { return Vec4{0, 0, 0, 1} }

// Lerp interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func ApproxEqual(a, b Vec4, eps float32) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
