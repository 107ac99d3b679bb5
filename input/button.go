// Package input holds the keyboard, mouse and display state the simulation
// reads, and the window events that update it.
package input

// ButtonState is the last observed state of a key or mouse button.
type ButtonState uint8

const (
	Released ButtonState = iota
	Pressed
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Button records a state transition and the tick it happened in.
type Button struct {
	Tick  uint64
	State ButtonState
}

// Down reports whether the button is held.
func (b Button) Down() bool { return b.State == Pressed }

// PressedAt reports whether the button went down during tick.
func (b Button) PressedAt(tick uint64) bool {
	return b.State == Pressed && b.Tick == tick
}

// ReleasedAt reports whether the button came up during tick.
func (b Button) ReleasedAt(tick uint64) bool {
	return b.State == Released && b.Tick == tick && tick != 0
}
