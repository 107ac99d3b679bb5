// Package ebitenwin runs a game in an ebiten window. Geometry is projected
// on the CPU with gfx.Project and drawn with DrawTriangles32.
package ebitenwin

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/porp/ecs"
	"github.com/milk9111/porp/gfx"
	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/vmath"
)

var _ ecs.Window = (*Window)(nil)

// Window turns ebiten input into events and keeps the uploaded resources.
type Window struct {
	mu     sync.Mutex
	events []input.Event

	focused bool
	size    [2]int
	cursor  [2]int
	closing bool

	vertices map[ids.ID][]gfx.Vertex
	indices  map[ids.ID][]gfx.Index
	textures map[ids.ID]*ebiten.Image
	methods  map[ids.ID]gfx.DrawMethod

	screen  *ebiten.Image
	scratch []ebiten.Vertex
}

func NewWindow() *Window {
	return &Window{
		focused:  true,
		vertices: make(map[ids.ID][]gfx.Vertex),
		indices:  make(map[ids.ID][]gfx.Index),
		textures: make(map[ids.ID]*ebiten.Image),
		methods:  make(map[ids.ID]gfx.DrawMethod),
	}
}

func (w *Window) push(ev input.Event) {
	w.mu.Lock()
	w.events = append(w.events, ev)
	w.mu.Unlock()
}

// PollEvents returns the events collected since the last call.
func (w *Window) PollEvents() []input.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.events
	w.events = nil
	return out
}

// collect reads the ebiten input state. Call it once per Update.
func (w *Window) collect() {
	if ebiten.IsWindowBeingClosed() && !w.closing {
		w.closing = true
		w.push(input.Closed())
	}
	if f := ebiten.IsFocused(); f != w.focused {
		w.focused = f
		w.push(input.Focused(f))
	}

	for code, k := range keymap {
		switch {
		case inpututil.IsKeyJustPressed(k):
			w.push(input.KeyEvent(code, input.Pressed))
		case inpututil.IsKeyJustReleased(k):
			w.push(input.KeyEvent(code, input.Released))
		}
	}

	if x, y := ebiten.CursorPosition(); x != w.cursor[0] || y != w.cursor[1] {
		w.cursor = [2]int{x, y}
		w.push(input.MouseMoved(float32(x), float32(y)))
	}
	for b, mb := range mousemap {
		switch {
		case inpututil.IsMouseButtonJustPressed(mb):
			w.push(input.MouseButtonEvent(b, input.Pressed))
		case inpututil.IsMouseButtonJustReleased(mb):
			w.push(input.MouseButtonEvent(b, input.Released))
		}
	}
}

// resize reports a new screen size once.
func (w *Window) resize(width, height int) {
	if width == w.size[0] && height == w.size[1] {
		return
	}
	w.size = [2]int{width, height}
	w.push(input.Resized(float32(width), float32(height)))
}

// Size is the last reported screen size.
func (w *Window) Size() vmath.Vec2 {
	return vmath.Vec2{float32(w.size[0]), float32(w.size[1])}
}

func (w *Window) AllocateVertexBuffer(id ids.ID, vertices []gfx.Vertex) error {
	w.vertices[id] = append([]gfx.Vertex(nil), vertices...)
	return nil
}

func (w *Window) AllocateIndexBuffer(id ids.ID, indices []gfx.Index) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("ebitenwin: index buffer %d: %d indices is not a triangle list", id, len(indices))
	}
	w.indices[id] = append([]gfx.Index(nil), indices...)
	return nil
}

func (w *Window) AllocateTexture(id ids.ID, raw []byte) error {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("ebitenwin: texture %d: %w", id, err)
	}
	if old, ok := w.textures[id]; ok {
		old.Deallocate()
	}
	w.textures[id] = ebiten.NewImageFromImage(img)
	return nil
}

func (w *Window) SetDrawParameters(id ids.ID, method gfx.DrawMethod) error {
	w.methods[id] = method
	return nil
}

// Draw projects the call and draws it onto the current frame.
func (w *Window) Draw(call gfx.DrawCall) error {
	if w.screen == nil {
		return nil
	}
	verts, ok := w.vertices[call.Vertex]
	if !ok {
		return fmt.Errorf("ebitenwin: draw: vertex buffer %d: %w", call.Vertex, gfx.ErrUnknownResource)
	}
	idx, ok := w.indices[call.Index]
	if !ok {
		return fmt.Errorf("ebitenwin: draw: index buffer %d: %w", call.Index, gfx.ErrUnknownResource)
	}
	tex, ok := w.textures[call.Texture]
	if !ok {
		return fmt.Errorf("ebitenwin: draw: texture %d: %w", call.Texture, gfx.ErrUnknownResource)
	}
	method, ok := w.methods[call.DrawParameter]
	if !ok {
		return fmt.Errorf("ebitenwin: draw: draw parameters %d: %w", call.DrawParameter, gfx.ErrUnknownResource)
	}

	size := w.screen.Bounds().Size()
	projected, order := gfx.Project(call, verts, idx, method, float32(size.X), float32(size.Y))
	if len(order) == 0 {
		return nil
	}

	tb := tex.Bounds()
	tw, th := float32(tb.Dx()), float32(tb.Dy())
	w.scratch = w.scratch[:0]
	for _, v := range projected {
		w.scratch = append(w.scratch, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   float32(tb.Min.X) + v.U*tw,
			SrcY:   float32(tb.Min.Y) + v.V*th,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	w.screen.DrawTriangles32(w.scratch, order, tex, &ebiten.DrawTrianglesOptions{})
	return nil
}

// Present ends the frame. ebiten shows it when Draw returns.
func (w *Window) Present() error {
	w.screen = nil
	return nil
}
