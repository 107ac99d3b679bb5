// Package beings holds the Being kinds of the isometric demo.
package beings

import (
	"fmt"

	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/prefabs"
	"github.com/milk9111/porp/vmath"
)

// Column is a unit box standing on y = 0: x and z span [-0.5, 0.5] and y
// spans [0, 1]. It has no bottom face. Faces wind counter-clockwise seen
// from outside.
func Column() ([]gfx.Vertex, []gfx.Index) {
	faces := [][4]vmath.Vec3{
		// top
		{{-0.5, 1, 0.5}, {0.5, 1, 0.5}, {0.5, 1, -0.5}, {-0.5, 1, -0.5}},
		// +x
		{{0.5, 0, 0.5}, {0.5, 0, -0.5}, {0.5, 1, -0.5}, {0.5, 1, 0.5}},
		// -x
		{{-0.5, 0, -0.5}, {-0.5, 0, 0.5}, {-0.5, 1, 0.5}, {-0.5, 1, -0.5}},
		// +z
		{{-0.5, 0, 0.5}, {0.5, 0, 0.5}, {0.5, 1, 0.5}, {-0.5, 1, 0.5}},
		// -z
		{{0.5, 0, -0.5}, {-0.5, 0, -0.5}, {-0.5, 1, -0.5}, {0.5, 1, -0.5}},
	}
	return quads(faces, vmath.Vec3{})
}

// Cube is Column centered on the origin with a bottom face.
func Cube() ([]gfx.Vertex, []gfx.Index) {
	faces := [][4]vmath.Vec3{
		{{-0.5, 1, 0.5}, {0.5, 1, 0.5}, {0.5, 1, -0.5}, {-0.5, 1, -0.5}},
		{{0.5, 0, 0.5}, {0.5, 0, -0.5}, {0.5, 1, -0.5}, {0.5, 1, 0.5}},
		{{-0.5, 0, -0.5}, {-0.5, 0, 0.5}, {-0.5, 1, 0.5}, {-0.5, 1, -0.5}},
		{{-0.5, 0, 0.5}, {0.5, 0, 0.5}, {0.5, 1, 0.5}, {-0.5, 1, 0.5}},
		{{0.5, 0, -0.5}, {-0.5, 0, -0.5}, {-0.5, 1, -0.5}, {0.5, 1, -0.5}},
		// bottom
		{{-0.5, 0, -0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}, {-0.5, 0, 0.5}},
	}
	return quads(faces, vmath.Vec3{0, -0.5, 0})
}

func quads(faces [][4]vmath.Vec3, offset vmath.Vec3) ([]gfx.Vertex, []gfx.Index) {
	uv := [4]vmath.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	verts := make([]gfx.Vertex, 0, len(faces)*4)
	idx := make([]gfx.Index, 0, len(faces)*6)
	for _, f := range faces {
		base := gfx.Index(len(verts))
		for i, p := range f {
			verts = append(verts, gfx.NewVertex(p.Add(offset), uv[i]))
		}
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	return verts, idx
}

func drawMethod(d prefabs.DrawSpec) (gfx.DrawMethod, error) {
	cull, err := gfx.ParseCullMode(d.Cull)
	if err != nil {
		return gfx.DrawMethod{}, fmt.Errorf("beings: %w", err)
	}
	depth := gfx.DepthNone
	if d.Depth {
		depth = gfx.DepthIfLess
	}
	return gfx.Both(depth, cull), nil
}
