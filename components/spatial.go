// Package components defines ECS components for the simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	axisX = r2.Vec{X: 1}
	axisY = r2.Vec{Y: 1}
)

// Transform places an entity in the y-up world.
// Rotation is in radians, counter-clockwise, with 0 facing +Y.
type Transform struct {
	Position r2.Vec
	Z        float64 // draw order only; never wrapped or integrated
	Rotation float64
	Scale    float64
}

// Forward returns the unit vector the entity faces.
func (t *Transform) Forward() r2.Vec {
	return r2.Rotate(axisY, t.Rotation, r2.Vec{})
}

// Right returns the unit vector to the entity's right.
func (t *Transform) Right() r2.Vec {
	return r2.Rotate(axisX, t.Rotation, r2.Vec{})
}

// Velocity represents an entity's linear and angular velocity per second.
type Velocity struct {
	Linear  r2.Vec
	Angular float64 // radians per second
}
