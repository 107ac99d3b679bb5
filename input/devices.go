package input

import (
	"sync"

	"github.com/milk9111/porp/vmath"
)

// Keyboard is the last known state of every key.
type Keyboard struct {
	mu   sync.RWMutex
	keys map[KeyCode]Button
}

func NewKeyboard() *Keyboard {
	return &Keyboard{keys: make(map[KeyCode]Button)}
}

// Key returns the state of k. Keys never seen read as released at tick 0.
func (k *Keyboard) Key(code KeyCode) Button {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.keys[code]
}

func (k *Keyboard) SetKey(code KeyCode, b Button) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[code] = b
}

// Mouse is the last known state of the mouse buttons and cursor position in
// window pixels.
type Mouse struct {
	mu       sync.RWMutex
	buttons  map[MouseButton]Button
	position vmath.Vec2
}

func NewMouse() *Mouse {
	return &Mouse{buttons: make(map[MouseButton]Button)}
}

func (m *Mouse) Button(b MouseButton) Button {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buttons[b]
}

func (m *Mouse) SetButton(b MouseButton, state Button) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons[b] = state
}

func (m *Mouse) Position() vmath.Vec2 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

func (m *Mouse) SetPosition(p vmath.Vec2) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = p
}

// Display tracks the window resolution. The aspect ratio is derived on every
// resize; a zero height keeps the previous ratio.
type Display struct {
	mu         sync.RWMutex
	resolution vmath.Vec2
	aspect     float32
}

func NewDisplay(resolution vmath.Vec2) *Display {
	d := &Display{aspect: 1}
	d.SetResolution(resolution)
	return d
}

func (d *Display) SetResolution(r vmath.Vec2) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resolution = r
	if r[1] != 0 {
		d.aspect = r[0] / r[1]
	}
}

func (d *Display) Resolution() vmath.Vec2 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.resolution
}

func (d *Display) AspectRatio() float32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.aspect
}

// NDC converts a window pixel position to normalized device coordinates
// with y up.
func (d *Display) NDC(p vmath.Vec2) vmath.Vec2 {
	r := d.Resolution()
	if r[0] == 0 || r[1] == 0 {
		return vmath.Vec2{}
	}
	return vmath.Vec2{2*p[0]/r[0] - 1, 1 - 2*p[1]/r[1]}
}
