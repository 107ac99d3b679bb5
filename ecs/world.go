package ecs

import (
	"sync/atomic"
	"time"

	"github.com/milk9111/porp/ids"
	"github.com/milk9111/porp/input"
	"github.com/milk9111/porp/vmath"
)

// World is the state shared by every Being during a tick: the registry and
// read access to the input devices.
type World struct {
	beings   *Registry
	keyboard *input.Keyboard
	mouse    *input.Mouse
	display  *input.Display
	tick     atomic.Uint64
	timestep time.Duration
}

// NewWorld creates a world over the given devices. Nil devices are replaced
// with empty ones.
func NewWorld(a *ids.Allocator, kb *input.Keyboard, m *input.Mouse, d *input.Display) *World {
	if kb == nil {
		kb = input.NewKeyboard()
	}
	if m == nil {
		m = input.NewMouse()
	}
	if d == nil {
		d = input.NewDisplay(vmath.Vec2{1, 1})
	}
	return &World{
		beings:   NewRegistry(a),
		keyboard: kb,
		mouse:    m,
		display:  d,
	}
}

// Beings returns the live registry, not a copy.
func (w *World) Beings() *Registry {
	return w.beings
}

func (w *World) Key(code input.KeyCode) input.Button {
	return w.keyboard.Key(code)
}

func (w *World) MouseButton(b input.MouseButton) input.Button {
	return w.mouse.Button(b)
}

func (w *World) MousePosition() vmath.Vec2 {
	return w.mouse.Position()
}

// MouseNDC is the mouse position in normalized device coordinates.
func (w *World) MouseNDC() vmath.Vec2 {
	return w.display.NDC(w.mouse.Position())
}

func (w *World) Resolution() vmath.Vec2 {
	return w.display.Resolution()
}

func (w *World) AspectRatio() float32 {
	return w.display.AspectRatio()
}

// TickNumber is the number of completed ticks. During a tick it is the
// number of the tick being run.
func (w *World) TickNumber() uint64 {
	if w == nil {
		return 0
	}
	return w.tick.Load()
}

// Timestep is the fixed tick length of the owning Game, or zero.
func (w *World) Timestep() time.Duration {
	return w.timestep
}
