// Package platform adapts raylib to the simulation: it polls input and draws entities.
package platform

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nairan/input"
)

var keyCodes = map[input.Button]int32{
	input.KeyW:     rl.KeyW,
	input.KeyA:     rl.KeyA,
	input.KeyS:     rl.KeyS,
	input.KeyD:     rl.KeyD,
	input.KeyUp:    rl.KeyUp,
	input.KeyDown:  rl.KeyDown,
	input.KeyLeft:  rl.KeyLeft,
	input.KeyRight: rl.KeyRight,
	input.KeySpace: rl.KeySpace,
	input.KeyP:     rl.KeyP,
}

var mouseButtons = map[input.Button]rl.MouseButton{
	input.MouseLeft:  rl.MouseButtonLeft,
	input.MouseRight: rl.MouseButtonRight,
}

// isDown reports whether b is held this frame.
func isDown(b input.Button) bool {
	if key, ok := keyCodes[b]; ok {
		return rl.IsKeyDown(key)
	}
	if mb, ok := mouseButtons[b]; ok {
		return rl.IsMouseButtonDown(mb)
	}
	return false
}

// Input polls raylib once per frame.
type Input struct {
	tracker input.Tracker
}

// Poll returns this frame's button snapshot with press and release edges.
func (in *Input) Poll() input.Snapshot {
	return in.tracker.Poll(isDown)
}

// Cursor reads the mouse position from raylib.
type Cursor struct{}

// CursorPosition implements camera.CursorSource.
func (Cursor) CursorPosition() (x, y float64, ok bool) {
	if !rl.IsCursorOnScreen() {
		return 0, 0, false
	}
	p := rl.GetMousePosition()
	return float64(p.X), float64(p.Y), true
}
