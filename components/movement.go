package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/config"
)

// MovementController holds desired direction and top speed.
// Intent is unit length or zero.
type MovementController struct {
	Intent   r2.Vec
	MaxSpeed float64
}

// Steering turns an entity toward the cursor at a bounded rate.
type Steering struct {
	RateRad     float64 // radians per second
	MinDistance float64 // cursor closer than this is ignored
}

// Ship marks a thrust-driven entity.
type Ship struct {
	ThrustSpeed float64
}

// Player marks the entity driven by local input.
type Player struct{}

// ScreenWrap marks entities that wrap around the viewport edges.
type ScreenWrap struct{}

// Attachment pins an entity to an owner at a local offset.
// The offset is expressed in the owner's frame (X right, Y forward).
type Attachment struct {
	Owner  ecs.Entity
	Offset r2.Vec
	Z      float64 // added to the owner's Z
}

// SteeringFromConfig returns the configured steering parameters.
func SteeringFromConfig(cfg *config.Config) Steering {
	return Steering{
		RateRad:     cfg.Derived.SteeringRateRad,
		MinDistance: cfg.Steering.MinDistance,
	}
}

// MovementFromConfig returns a stationary controller with the mode's top speed.
func MovementFromConfig(cfg *config.Config) MovementController {
	speed := cfg.Ship.Speed
	if cfg.Derived.DirectionalMode {
		speed = cfg.Ship.MaxSpeed
	}
	return MovementController{MaxSpeed: speed}
}
