package input

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Bindings maps actions to buttons.
type Bindings struct {
	Thrust    Button
	Aim       Button // steering and fire both require this held
	FireClick Button
	FireHold  Button
	Pause     Button
}

// DefaultBindings: W thrusts, right mouse aims, left click or Space fires, P pauses.
var DefaultBindings = Bindings{
	Thrust:    KeyW,
	Aim:       MouseRight,
	FireClick: MouseLeft,
	FireHold:  KeySpace,
	Pause:     KeyP,
}

// DirectionalIntent reads WASD and arrows into a unit or zero vector (y up).
func DirectionalIntent(in State) r2.Vec {
	var v r2.Vec
	if in.Pressed(KeyW) || in.Pressed(KeyUp) {
		v.Y += 1
	}
	if in.Pressed(KeyS) || in.Pressed(KeyDown) {
		v.Y -= 1
	}
	if in.Pressed(KeyA) || in.Pressed(KeyLeft) {
		v.X -= 1
	}
	if in.Pressed(KeyD) || in.Pressed(KeyRight) {
		v.X += 1
	}
	if v == (r2.Vec{}) {
		return v
	}
	return r2.Unit(v)
}

// ShipIntent is the forward axis while thrust is held, zero otherwise.
func (b Bindings) ShipIntent(in State, forward r2.Vec) r2.Vec {
	if !in.Pressed(b.Thrust) {
		return r2.Vec{}
	}
	return forward
}

// Steering reports whether rotate-toward-cursor is active.
func (b Bindings) Steering(in State) bool {
	return in.Pressed(b.Aim)
}

// WantsFire requires aim held and either a fresh click or the fire key held.
func (b Bindings) WantsFire(in State) bool {
	return in.Pressed(b.Aim) && (in.JustPressed(b.FireClick) || in.Pressed(b.FireHold))
}

// EngineStarted is the thrust press edge.
func (b Bindings) EngineStarted(in State) bool { return in.JustPressed(b.Thrust) }

// EngineStopped is the thrust release edge.
func (b Bindings) EngineStopped(in State) bool { return in.JustReleased(b.Thrust) }

// PauseToggled is the pause press edge.
func (b Bindings) PauseToggled(in State) bool { return in.JustPressed(b.Pause) }
