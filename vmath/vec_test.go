package vmath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVecArithmetic(t *testing.T) {
	a3, b3 := Vec3{1, 2, 3}, Vec3{4, 5, 6}
	require.Equal(t, Vec3{5, 7, 9}, a3.Add(b3))
	require.Equal(t, Vec3{-3, -3, -3}, a3.Sub(b3))
	require.Equal(t, Vec3{4, 10, 18}, a3.Mul(b3))
	require.Equal(t, Vec3{2, 4, 6}, a3.Scale(2))
	require.Equal(t, float32(32), a3.Dot(b3))

	a2, b2 := Vec2{1, 2}, Vec2{3, 4}
	require.Equal(t, Vec2{4, 6}, a2.Add(b2))
	require.Equal(t, Vec2{-2, -2}, a2.Sub(b2))
	require.Equal(t, Vec2{3, 8}, a2.Mul(b2))
	require.Equal(t, float32(11), a2.Dot(b2))

	a4 := Vec4{1, 2, 3, 4}
	require.Equal(t, Vec4{2, 4, 6, 8}, a4.Add(a4))
	require.Equal(t, Vec4{}, a4.Sub(a4))
	require.Equal(t, Vec4{1, 4, 9, 16}, a4.Mul(a4))
	require.Equal(t, float32(30), a4.Dot(a4))
}

func TestVecConversions(t *testing.T) {
	v4 := Vec4{1, 2, 3, 4}
	require.Equal(t, Vec3{1, 2, 3}, v4.Vec3())
	require.Equal(t, Vec2{1, 2}, v4.Vec2())
	require.Equal(t, Vec2{1, 2}, v4.Vec3().Vec2())

	require.Equal(t, Vec4{1, 2, 3, 9}, Vec3{1, 2, 3}.Vec4(9))
	require.Equal(t, Vec3{1, 2, 7}, Vec2{1, 2}.Vec3(7))
	require.Equal(t, Vec4{1, 2, 7, 8}, Vec2{1, 2}.Vec4(7, 8))
}

func TestHomogenize(t *testing.T) {
	require.Equal(t, Vec3{1, 2, 3}, Vec4{2, 4, 6, 2}.Homogenize())
	require.Equal(t, Vec3{2, 4, 6}, Vec4{2, 4, 6, 0}.Homogenize())
}

func TestLerp(t *testing.T) {
	require.Equal(t, float32(5), Lerp(0, 10, 0.5))
	require.Equal(t, float32(10), Lerp(0, 10, 1))
}
