package systems

import (
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

// alignEpsilon matches single-precision epsilon on the forward·target dot product.
const alignEpsilon = 1.1920929e-07

// SteeringSystem rotates entities toward the cursor at a bounded rate.
type SteeringSystem struct {
	filter *ecs.Filter2[components.Transform, components.Steering]
}

// NewSteeringSystem creates a new steering system.
func NewSteeringSystem(w *ecs.World) *SteeringSystem {
	return &SteeringSystem{
		filter: ecs.NewFilter2[components.Transform, components.Steering](w),
	}
}

// Update turns every steering entity toward target. It does nothing unless
// active and the cursor resolved.
func (s *SteeringSystem) Update(dt time.Duration, active bool, target r2.Vec, resolved bool) {
	if !active || !resolved {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		tr, st := query.Get()
		step := SteerStep(tr, target, st.RateRad, st.MinDistance, dt)
		if step != 0 {
			tr.Rotation = normalizeAngle(tr.Rotation + step)
		}
	}
}

// SteerStep returns the signed rotation (radians, CCW positive) that turns tr
// toward target without overshooting. It returns 0 when the target is within
// minDistance or already dead ahead.
func SteerStep(tr *components.Transform, target r2.Vec, rate, minDistance float64, dt time.Duration) float64 {
	delta := r2.Sub(target, tr.Position)
	dist := r2.Norm(delta)
	if dist <= minDistance || dist == 0 {
		return 0
	}
	toTarget := r2.Scale(1/dist, delta)

	fwdDot := r2.Dot(tr.Forward(), toTarget)
	if math.Abs(fwdDot-1) < alignEpsilon {
		return 0
	}

	// Target on the right needs a clockwise (negative) turn. A target dead
	// behind has rightDot == 0 and copysign still yields a direction.
	rightDot := r2.Dot(tr.Right(), toTarget)
	sign := -math.Copysign(1, rightDot)

	maxAngle := math.Acos(clampf(fwdDot, -1, 1))
	return sign * math.Min(rate*dt.Seconds(), maxAngle)
}
