package input

import "strconv"

// KeyCode identifies a keyboard key independently of the window backend.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace

	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	keyCount
)

var keyNames = func() map[KeyCode]string {
	m := map[KeyCode]string{
		KeyUnknown:      "unknown",
		KeyUp:           "up",
		KeyDown:         "down",
		KeyLeft:         "left",
		KeyRight:        "right",
		KeySpace:        "space",
		KeyEnter:        "enter",
		KeyEscape:       "escape",
		KeyTab:          "tab",
		KeyBackspace:    "backspace",
		KeyLeftShift:    "left_shift",
		KeyRightShift:   "right_shift",
		KeyLeftControl:  "left_control",
		KeyRightControl: "right_control",
		KeyLeftAlt:      "left_alt",
		KeyRightAlt:     "right_alt",
	}
	for k := KeyA; k <= KeyZ; k++ {
		m[k] = string(rune('a' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		m[k] = string(rune('0' + int(k-Key0)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		m[k] = "f" + strconv.Itoa(int(k-KeyF1)+1)
	}
	return m
}()

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKeyCode is the inverse of KeyCode.String.
func ParseKeyCode(s string) (KeyCode, bool) {
	for k := KeyUnknown + 1; k < keyCount; k++ {
		if keyNames[k] == s {
			return k, true
		}
	}
	return KeyUnknown, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return "unknown"
}
