package gfx

import (
	"sort"

	"github.com/milk9111/porp/vmath"
)

// ScreenVertex is a projected vertex in pixel coordinates with y down.
type ScreenVertex struct {
	X, Y  float32
	Depth float32
	U, V  float32
}

// minClipW rejects vertices at or behind the eye.
const minClipW = 1e-5

// Project transforms a draw call on the CPU for backends without a depth
// buffer or culling. Triangles with a vertex behind the eye are dropped,
// culling compares the winding in normalized device space (counter-clockwise
// is front facing), and a depth test orders triangles far to near.
func Project(call DrawCall, vertices []Vertex, indices []Index, method DrawMethod, width, height float32) ([]ScreenVertex, []Index) {
	mvp := call.MVP()

	out := make([]ScreenVertex, len(vertices))
	valid := make([]bool, len(vertices))
	ndc := make([]vmath.Vec3, len(vertices))
	for i, v := range vertices {
		clip := mvp.MulVec4(vmath.Vec3(v.Position).Vec4(1))
		if clip[3] <= minClipW {
			continue
		}
		n := clip.Homogenize()
		ndc[i] = n
		valid[i] = true
		out[i] = ScreenVertex{
			X:     (n[0] + 1) / 2 * width,
			Y:     (1 - n[1]) / 2 * height,
			Depth: n[2],
			U:     v.TexCoord[0],
			V:     v.TexCoord[1],
		}
	}

	type tri struct {
		idx   [3]Index
		depth float32
	}
	tris := make([]tri, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
			continue
		}
		if !valid[a] || !valid[b] || !valid[c] {
			continue
		}
		if culled(method.Cull, ndc[a], ndc[b], ndc[c]) {
			continue
		}
		tris = append(tris, tri{
			idx:   [3]Index{a, b, c},
			depth: (ndc[a][2] + ndc[b][2] + ndc[c][2]) / 3,
		})
	}

	if method.Depth == DepthIfLess {
		sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })
	}

	outIdx := make([]Index, 0, len(tris)*3)
	for _, t := range tris {
		outIdx = append(outIdx, t.idx[:]...)
	}
	return out, outIdx
}

func culled(mode CullMode, a, b, c vmath.Vec3) bool {
	if mode == CullNone {
		return false
	}
	area := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
	switch mode {
	case CullClockwise:
		return area < 0
	case CullCounterClockwise:
		return area > 0
	}
	return false
}
