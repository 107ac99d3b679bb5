package vmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const eps = 1e-4

// randomInvertible returns a diagonally dominant matrix, which is never singular.
func randomInvertible(r *rand.Rand) Mat4 {
	var m Mat4
	for y := 0; y < 4; y++ {
		var sum float32
		for x := 0; x < 4; x++ {
			if x == y {
				continue
			}
			v := r.Float32()*2 - 1
			m[y][x] = v
			sum += abs(v)
		}
		sign := float32(1)
		if r.Intn(2) == 0 {
			sign = -1
		}
		m[y][y] = sign * (sum + 1 + r.Float32())
	}
	return m
}

func randomMat(r *rand.Rand) Mat4 {
	var m Mat4
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			m[y][x] = r.Float32()*4 - 2
		}
	}
	return m
}

func randomVec4(r *rand.Rand) Vec4 {
	return Vec4{r.Float32()*4 - 2, r.Float32()*4 - 2, r.Float32()*4 - 2, r.Float32()*4 - 2}
}

func requireMatNear(t *testing.T, want, got Mat4) {
	t.Helper()
	require.True(t, MatApproxEqual(want, got, eps), "want\n%v\ngot\n%v", want, got)
}

func requireVecNear(t *testing.T, want, got Vec4) {
	t.Helper()
	require.True(t, ApproxEqual(want, got, eps), "want %v got %v", want, got)
}

func TestInverseRandom(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		m := randomInvertible(r)
		inv, ok := m.InverseChecked()
		require.True(t, ok)
		requireMatNear(t, Identity(), inv.Mul(m))
		requireMatNear(t, Identity(), m.Mul(inv))
	}
}

func TestInverseNeedsRowSwap(t *testing.T) {
	// Zero in the top-left forces the pivot search to swap rows.
	m := Mat4{
		{0, 2, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 3},
		{0, 0, 4, 0},
	}
	inv, ok := m.InverseChecked()
	require.True(t, ok)
	requireMatNear(t, Identity(), inv.Mul(m))
	requireMatNear(t, Identity(), m.Mul(inv))
}

func TestInverseKnownTransforms(t *testing.T) {
	cases := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"translation", Translation(Vec3{3, -2, 7})},
		{"scale", Scale(Vec3{2, 0.5, 4})},
		{"rotation", Rotation(Vec3{0.3, -1.1, 2.0})},
		{"perspective", Perspective(0.1, 100, 60, 16.0/9.0)},
		{"orthographic", Orthographic(0.1, 100, 90, 1)},
		{"view", View(0.4, 1.2, Vec3{1, 5, -3})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inv, ok := c.m.InverseChecked()
			require.True(t, ok)
			requireMatNear(t, Identity(), inv.Mul(c.m))
			requireMatNear(t, Identity(), c.m.Mul(inv))
		})
	}
}

func TestInverseSingularDoesNotPanic(t *testing.T) {
	cases := []struct {
		name string
		m    Mat4
	}{
		{"zero", Zero()},
		{"duplicate_rows", Mat4{{1, 2, 3, 4}, {1, 2, 3, 4}, {0, 1, 0, 0}, {0, 0, 0, 1}}},
		{"zero_column", Mat4{{0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}, {0, 1, 1, 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.NotPanics(t, func() { _ = c.m.Inverse() })
			_, ok := c.m.InverseChecked()
			require.False(t, ok)
		})
	}
}

func TestMulComposition(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		a, b, v := randomMat(r), randomMat(r), randomVec4(r)
		requireVecNear(t, a.MulVec4(b.MulVec4(v)), a.Mul(b).MulVec4(v))
	}
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	translate := Translation(Vec3{10, 0, 0})
	scale := Scale(Vec3{2, 2, 2})
	p := Vec4{1, 0, 0, 1}

	// scale then translate: 1*2 + 10
	requireVecNear(t, Vec4{12, 0, 0, 1}, translate.Mul(scale).MulVec4(p))
	// translate then scale: (1 + 10) * 2
	requireVecNear(t, Vec4{22, 0, 0, 1}, scale.Mul(translate).MulVec4(p))
}

func TestViewAtCamera(t *testing.T) {
	v := View(0, 0, Vec3{0, 0, 5})
	requireVecNear(t, Vec4{0, 0, 0, 1}, v.MulVec4(Vec4{0, 0, 5, 1}))
}

func TestViewDegMatchesView(t *testing.T) {
	cam := Vec3{2, 3, 4}
	requireMatNear(t, View(math.Pi/4, math.Pi/2, cam), ViewDeg(45, 90, cam))
}

func TestViewBasisRows(t *testing.T) {
	pitch, yaw := float32(0.5), float32(-0.8)
	v := View(pitch, yaw, Vec3{})
	ps, pc := float32(math.Sin(0.5)), float32(math.Cos(0.5))
	ys, yc := float32(math.Sin(-0.8)), float32(math.Cos(-0.8))

	requireVecNear(t, Vec4{yc, 0, -ys, 0}, v[0])
	requireVecNear(t, Vec4{ys * ps, pc, yc * ps, 0}, v[1])
	requireVecNear(t, Vec4{ys * pc, -ps, pc * yc, 0}, v[2])
	requireVecNear(t, Vec4{0, 0, 0, 1}, v[3])
}

func TestProjectionRoundTrip(t *testing.T) {
	p := Perspective(0.5, 50, 70, 4.0/3.0)
	v := View(0.3, -0.6, Vec3{1, 4, 6})
	m := Translation(Vec3{2, 0, -1}).Mul(Rotation(Vec3{0.1, 0.2, 0.3})).Mul(Scale(Vec3{1, 2, 1}))

	points := []Vec4{
		{0, 0, 0, 1},
		{1, 1, 1, 1},
		{-0.5, 0.25, 0.75, 1},
	}
	for _, pt := range points {
		clip := p.Mul(v).Mul(m).MulVec4(pt)
		back := m.Inverse().MulVec4(v.Inverse().MulVec4(p.Inverse().MulVec4(clip)))
		requireVecNear(t, pt, back)
	}
}

func TestPerspectiveEntries(t *testing.T) {
	p := Perspective(1, 10, 90, 2)
	// tan(45deg) == 1, so d == 1.
	require.InDelta(t, 0.5, p[0][0], eps)
	require.InDelta(t, 1, p[1][1], eps)
	require.InDelta(t, 11.0/-9.0, p[2][2], eps)
	require.InDelta(t, 20.0/-9.0, p[2][3], eps)
	require.Equal(t, float32(-1), p[3][2])
	require.Equal(t, float32(0), p[3][3])
}

func TestRotationOrder(t *testing.T) {
	euler := Vec3{0.7, -0.4, 1.3}
	want := RotationZ(euler[2]).Mul(RotationY(euler[1]).Mul(RotationX(euler[0])))
	requireMatNear(t, want, Rotation(euler))

	// Quarter turn about X then Z maps +Y to +Z first, which Z leaves alone.
	r := Rotation(Vec3{math.Pi / 2, 0, math.Pi / 2})
	requireVecNear(t, Vec4{0, 0, 1, 0}, r.MulVec4(Vec4{0, 1, 0, 0}))
}

func TestRowOperations(t *testing.T) {
	m := Identity()
	m.SwapRows(0, 3)
	requireVecNear(t, Vec4UnitW(), m[0])
	requireVecNear(t, Vec4UnitX(), m[3])

	m.ScaleRow(1, 3)
	requireVecNear(t, Vec4{0, 3, 0, 0}, m[1])

	m.AddRow(2, 1, 2)
	requireVecNear(t, Vec4{0, 6, 1, 0}, m[2])
}

func TestTranspose(t *testing.T) {
	m := Translation(Vec3{1, 2, 3})
	tr := m.Transpose()
	requireVecNear(t, Vec4{1, 2, 3, 1}, tr[3])
	requireMatNear(t, m, tr.Transpose())
}
