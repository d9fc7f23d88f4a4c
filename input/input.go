// Package input turns button state into movement intent and triggers.
package input

import (
	"fmt"
	"strings"
)

// Button names a key or mouse button the simulation reads.
type Button uint8

const (
	KeyW Button = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyP
	MouseLeft
	MouseRight
	buttonCount
)

var buttonNames = [buttonCount]string{
	"w", "a", "s", "d", "up", "down", "left", "right", "space", "p", "mouse_left", "mouse_right",
}

func (b Button) String() string {
	if b < buttonCount {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// ParseButton returns the button with the given name.
func ParseButton(name string) (Button, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range buttonNames {
		if n == name {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Buttons returns every button the simulation reads.
func Buttons() []Button {
	out := make([]Button, buttonCount)
	for i := range out {
		out[i] = Button(i)
	}
	return out
}

// State is a read-only view of button state for one tick.
type State interface {
	Pressed(b Button) bool
	JustPressed(b Button) bool
	JustReleased(b Button) bool
}

// Snapshot is a State captured for one tick.
type Snapshot struct {
	down, pressed, released uint32
}

func bit(b Button) uint32 { return 1 << b }

func (s Snapshot) Pressed(b Button) bool      { return s.down&bit(b) != 0 }
func (s Snapshot) JustPressed(b Button) bool  { return s.pressed&bit(b) != 0 }
func (s Snapshot) JustReleased(b Button) bool { return s.released&bit(b) != 0 }

// Tracker derives edges from successive sets of held buttons.
type Tracker struct {
	prev uint32
}

// Next returns the snapshot for a tick where exactly the given buttons are held.
func (t *Tracker) Next(held ...Button) Snapshot {
	var down uint32
	for _, b := range held {
		down |= bit(b)
	}
	return t.next(down)
}

// Poll builds the next snapshot by asking isDown for every button.
func (t *Tracker) Poll(isDown func(Button) bool) Snapshot {
	var down uint32
	for b := Button(0); b < buttonCount; b++ {
		if isDown(b) {
			down |= bit(b)
		}
	}
	return t.next(down)
}

func (t *Tracker) next(down uint32) Snapshot {
	s := Snapshot{
		down:     down,
		pressed:  down &^ t.prev,
		released: t.prev &^ down,
	}
	t.prev = down
	return s
}

// None is a State with nothing held.
var None State = Snapshot{}
