package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

// MovementSystem turns intent into velocity and integrates transforms.
type MovementSystem struct {
	controllers *ecs.Filter2[components.MovementController, components.Velocity]
	bodies      *ecs.Filter2[components.Transform, components.Velocity]
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		controllers: ecs.NewFilter2[components.MovementController, components.Velocity](w),
		bodies:      ecs.NewFilter2[components.Transform, components.Velocity](w),
	}
}

// ApplyIntent sets linear velocity to intent × max speed. No smoothing.
func (s *MovementSystem) ApplyIntent() {
	query := s.controllers.Query()
	for query.Next() {
		mc, vel := query.Get()
		vel.Linear = r2.Scale(mc.MaxSpeed, mc.Intent)
	}
}

// Integrate advances position and rotation by velocity × dt.
func (s *MovementSystem) Integrate(dt time.Duration) {
	sec := dt.Seconds()
	query := s.bodies.Query()
	for query.Next() {
		tr, vel := query.Get()
		tr.Position = r2.Add(tr.Position, r2.Scale(sec, vel.Linear))
		if vel.Angular != 0 {
			tr.Rotation = normalizeAngle(tr.Rotation + vel.Angular*sec)
		}
	}
}
