package gfx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"sync"

	"github.com/milk9111/porp/ids"
)

// ErrUnknownResource is returned when a draw references an id the renderer
// never received.
var ErrUnknownResource = errors.New("gfx: unknown resource")

// TextureInfo describes a texture accepted by a Recorder.
type TextureInfo struct {
	Width, Height int
	Format        string
}

// Recorder is an in-memory Renderer. It validates and stores every upload
// and records draw calls until Present.
type Recorder struct {
	mu       sync.Mutex
	vertices map[ids.ID][]Vertex
	indices  map[ids.ID][]Index
	textures map[ids.ID]TextureInfo
	methods  map[ids.ID]DrawMethod
	calls    []DrawCall
	frames   int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		vertices: make(map[ids.ID][]Vertex),
		indices:  make(map[ids.ID][]Index),
		textures: make(map[ids.ID]TextureInfo),
		methods:  make(map[ids.ID]DrawMethod),
	}
}

func (r *Recorder) AllocateVertexBuffer(id ids.ID, vertices []Vertex) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertices[id] = append([]Vertex(nil), vertices...)
	return nil
}

func (r *Recorder) AllocateIndexBuffer(id ids.ID, indices []Index) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("gfx: index buffer %d: %d indices is not a triangle list", id, len(indices))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indices[id] = append([]Index(nil), indices...)
	return nil
}

func (r *Recorder) AllocateTexture(id ids.ID, raw []byte) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("gfx: texture %d: %w", id, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textures[id] = TextureInfo{Width: cfg.Width, Height: cfg.Height, Format: format}
	return nil
}

func (r *Recorder) SetDrawParameters(id ids.ID, method DrawMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[id] = method
	return nil
}

func (r *Recorder) Draw(call DrawCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vertices[call.Vertex]; !ok {
		return fmt.Errorf("gfx: draw vertex buffer %d: %w", call.Vertex, ErrUnknownResource)
	}
	if _, ok := r.indices[call.Index]; !ok {
		return fmt.Errorf("gfx: draw index buffer %d: %w", call.Index, ErrUnknownResource)
	}
	if _, ok := r.textures[call.Texture]; !ok {
		return fmt.Errorf("gfx: draw texture %d: %w", call.Texture, ErrUnknownResource)
	}
	if _, ok := r.methods[call.DrawParameter]; !ok {
		return fmt.Errorf("gfx: draw parameters %d: %w", call.DrawParameter, ErrUnknownResource)
	}
	r.calls = append(r.calls, call)
	return nil
}

// Present ends the frame and clears the recorded calls.
func (r *Recorder) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = r.calls[:0]
	r.frames++
	return nil
}

// Calls returns the draw calls recorded since the last Present.
func (r *Recorder) Calls() []DrawCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DrawCall(nil), r.calls...)
}

// Frames returns how many frames were presented.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Recorder) Vertices(id ids.ID) ([]Vertex, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vertices[id]
	return v, ok
}

func (r *Recorder) Indices(id ids.ID) ([]Index, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.indices[id]
	return v, ok
}

func (r *Recorder) Texture(id ids.ID) (TextureInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.textures[id]
	return v, ok
}

func (r *Recorder) DrawMethod(id ids.ID) (DrawMethod, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.methods[id]
	return v, ok
}
