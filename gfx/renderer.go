package gfx

import (
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/vmath"
)

// Renderer is the drawing backend. It owns every GPU resource and keys them
// by the identifiers the core allocates.
type Renderer interface {
	AllocateVertexBuffer(id ids.ID, vertices []Vertex) error
	AllocateIndexBuffer(id ids.ID, indices []Index) error
	AllocateTexture(id ids.ID, raw []byte) error
	SetDrawParameters(id ids.ID, method DrawMethod) error
	Draw(call DrawCall) error
}

// DrawCall is one entity draw with its cached matrices.
type DrawCall struct {
	Vertex        ids.ID
	Index         ids.ID
	Texture       ids.ID
	DrawParameter ids.ID

	Perspective vmath.Mat4
	View        vmath.Mat4
	Model       vmath.Mat4
}

// MVP returns Perspective * View * Model.
func (c DrawCall) MVP() vmath.Mat4 {
	return c.Perspective.Mul(c.View).Mul(c.Model)
}

// NewDrawCall resolves the matrices of e from t.
func NewDrawCall(e EntityIDs, t *Transforms) (DrawCall, error) {
	p, v, m, err := t.Lookup(e)
	if err != nil {
		return DrawCall{}, err
	}
	return DrawCall{
		Vertex:        e.Vertex,
		Index:         e.Index,
		Texture:       e.Texture,
		DrawParameter: e.DrawParameter,
		Perspective:   p,
		View:          v,
		Model:         m,
	}, nil
}
