package ebitenwin

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/porp/input"
)

// keymap pairs every backend-independent key with its ebiten key.
var keymap = func() map[input.KeyCode]ebiten.Key {
	m := map[input.KeyCode]ebiten.Key{
		input.KeyUp:           ebiten.KeyArrowUp,
		input.KeyDown:         ebiten.KeyArrowDown,
		input.KeyLeft:         ebiten.KeyArrowLeft,
		input.KeyRight:        ebiten.KeyArrowRight,
		input.KeySpace:        ebiten.KeySpace,
		input.KeyEnter:        ebiten.KeyEnter,
		input.KeyEscape:       ebiten.KeyEscape,
		input.KeyTab:          ebiten.KeyTab,
		input.KeyBackspace:    ebiten.KeyBackspace,
		input.KeyLeftShift:    ebiten.KeyShiftLeft,
		input.KeyRightShift:   ebiten.KeyShiftRight,
		input.KeyLeftControl:  ebiten.KeyControlLeft,
		input.KeyRightControl: ebiten.KeyControlRight,
		input.KeyLeftAlt:      ebiten.KeyAltLeft,
		input.KeyRightAlt:     ebiten.KeyAltRight,
	}
	letters := []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
		ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
		ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	}
	for i, k := range letters {
		m[input.KeyA+input.KeyCode(i)] = k
	}
	digits := []ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	for i, k := range digits {
		m[input.Key0+input.KeyCode(i)] = k
	}
	fkeys := []ebiten.Key{
		ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
		ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
	}
	for i, k := range fkeys {
		m[input.KeyF1+input.KeyCode(i)] = k
	}
	return m
}()

var mousemap = map[input.MouseButton]ebiten.MouseButton{
	input.MouseLeft:   ebiten.MouseButtonLeft,
	input.MouseRight:  ebiten.MouseButtonRight,
	input.MouseMiddle: ebiten.MouseButtonMiddle,
}
