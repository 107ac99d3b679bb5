package gfx

import "github.com/milk9111/porp/vmath"

// Index addresses a vertex within a vertex buffer.
type Index = uint32

// Vertex is a textured vertex in model space.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// NewVertex builds a vertex from a position and texture coordinate.
func NewVertex(pos vmath.Vec3, tex vmath.Vec2) Vertex {
	return Vertex{Position: pos, TexCoord: tex}
}

// VertexFromVec2 places v on the z=0 plane and reuses it as the texture coordinate.
func VertexFromVec2(v vmath.Vec2) Vertex {
	return Vertex{Position: v.Vec3(0), TexCoord: v}
}

// VertexFromVec3 uses x and y of v as the texture coordinate.
func VertexFromVec3(v vmath.Vec3) Vertex {
	return Vertex{Position: v, TexCoord: v.Vec2()}
}
