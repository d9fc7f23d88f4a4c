package systems

import (
	"math"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

func TestApplyIntent(t *testing.T) {
	testCases := []struct {
		name     string
		intent   r2.Vec
		maxSpeed float64
		want     r2.Vec
	}{
		{"right at max", r2.Vec{X: 1}, 400, r2.Vec{X: 400}},
		{"zero intent stops", r2.Vec{}, 400, r2.Vec{}},
		{"diagonal unit", r2.Unit(r2.Vec{X: 1, Y: 1}), 400, r2.Vec{X: 400 / math.Sqrt2, Y: 400 / math.Sqrt2}},
		{"thrust speed", r2.Vec{Y: 1}, 320, r2.Vec{Y: 320}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			m := ecs.NewMap2[components.MovementController, components.Velocity](w)
			e := m.NewEntity(
				&components.MovementController{Intent: tc.intent, MaxSpeed: tc.maxSpeed},
				&components.Velocity{Linear: r2.Vec{X: 999, Y: -999}},
			)

			NewMovementSystem(w).ApplyIntent()

			got := ecs.NewMap[components.Velocity](w).Get(e).Linear
			assert.True(t, vecNear(got, tc.want, 1e-9), "velocity %v, want %v", got, tc.want)
		})
	}
}

func TestIntegrate(t *testing.T) {
	w := ecs.NewWorld()
	m := ecs.NewMap2[components.Transform, components.Velocity](w)
	e := m.NewEntity(
		&components.Transform{Position: r2.Vec{X: 10, Y: 20}, Rotation: math.Pi - 0.1},
		&components.Velocity{Linear: r2.Vec{X: 100, Y: -50}, Angular: 1},
	)

	NewMovementSystem(w).Integrate(500 * time.Millisecond)

	tr := ecs.NewMap[components.Transform](w).Get(e)
	assert.InDelta(t, 60, tr.Position.X, 1e-9)
	assert.InDelta(t, -5, tr.Position.Y, 1e-9)
	// Rotation stays normalized after crossing pi
	assert.InDelta(t, -math.Pi+0.4, tr.Rotation, 1e-9)
}

func TestIntegrateZeroDeltaIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnShip(w, r2.Vec{X: 5, Y: 5}, 0.3)
	ecs.NewMap[components.Velocity](w).Get(e).Linear = r2.Vec{X: 100}

	NewMovementSystem(w).Integrate(0)

	tr := ecs.NewMap[components.Transform](w).Get(e)
	assert.Equal(t, r2.Vec{X: 5, Y: 5}, tr.Position)
	assert.Equal(t, 0.3, tr.Rotation)
}
