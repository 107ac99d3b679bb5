package gfx

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownPart is returned when an update names a part the Being does not have.
var ErrUnknownPart = errors.New("gfx: unknown part")

// VertexUpdate replaces the vertex buffer of a part.
type VertexUpdate struct {
	Part     uint64
	Vertices []Vertex
}

// IndexUpdate replaces the index buffer of a part.
type IndexUpdate struct {
	Part    uint64
	Indices []Index
}

// TextureUpdate replaces the texture of a part with encoded image bytes.
type TextureUpdate struct {
	Part uint64
	Raw  []byte
}

// DrawMethodUpdate replaces the draw parameters of a part.
type DrawMethodUpdate struct {
	Part   uint64
	Method DrawMethod
}

// RenderUpdateData is a drained batch of pending updates, in push order per kind.
type RenderUpdateData struct {
	Vertices    []VertexUpdate
	Indices     []IndexUpdate
	Textures    []TextureUpdate
	DrawMethods []DrawMethodUpdate
}

// Len returns the number of updates across all kinds.
func (d RenderUpdateData) Len() int {
	return len(d.Vertices) + len(d.Indices) + len(d.Textures) + len(d.DrawMethods)
}

// RenderQueue buffers the resource changes a Being wants applied before it
// is next drawn. Beings push during Tick; the render step drains.
type RenderQueue struct {
	mu   sync.Mutex
	data RenderUpdateData
}

// NewRenderQueue creates an empty queue.
func NewRenderQueue() *RenderQueue {
	return &RenderQueue{}
}

func (q *RenderQueue) PushVertices(part uint64, vertices []Vertex) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data.Vertices = append(q.data.Vertices, VertexUpdate{Part: part, Vertices: vertices})
}

func (q *RenderQueue) PushIndices(part uint64, indices []Index) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data.Indices = append(q.data.Indices, IndexUpdate{Part: part, Indices: indices})
}

func (q *RenderQueue) PushTexture(part uint64, raw []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data.Textures = append(q.data.Textures, TextureUpdate{Part: part, Raw: raw})
}

func (q *RenderQueue) PushDrawMethod(part uint64, method DrawMethod) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data.DrawMethods = append(q.data.DrawMethods, DrawMethodUpdate{Part: part, Method: method})
}

// Len returns the number of pending updates.
func (q *RenderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.data.Len()
}

// Drain returns every pending update and empties the queue.
func (q *RenderQueue) Drain() RenderUpdateData {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.data
	q.data = RenderUpdateData{}
	return out
}

// Apply drains the queue and forwards each update to r, keyed by the ids of
// the part's entity. Every drained update is consumed even if some fail.
func (q *RenderQueue) Apply(r Renderer, parts map[uint64]*Entity) error {
	data := q.Drain()
	if data.Len() == 0 {
		return nil
	}

	var errs []error
	lookup := func(op string, part uint64) (EntityIDs, bool) {
		e, ok := parts[part]
		if !ok {
			errs = append(errs, fmt.Errorf("gfx: %s part %d: %w", op, part, ErrUnknownPart))
			return EntityIDs{}, false
		}
		return e.IDs(), true
	}

	for _, u := range data.Vertices {
		if e, ok := lookup("vertices", u.Part); ok {
			errs = append(errs, r.AllocateVertexBuffer(e.Vertex, u.Vertices))
		}
	}
	for _, u := range data.Indices {
		if e, ok := lookup("indices", u.Part); ok {
			errs = append(errs, r.AllocateIndexBuffer(e.Index, u.Indices))
		}
	}
	for _, u := range data.Textures {
		if e, ok := lookup("texture", u.Part); ok {
			errs = append(errs, r.AllocateTexture(e.Texture, u.Raw))
		}
	}
	for _, u := range data.DrawMethods {
		if e, ok := lookup("draw method", u.Part); ok {
			errs = append(errs, r.SetDrawParameters(e.DrawParameter, u.Method))
		}
	}
	return errors.Join(errs...)
}
