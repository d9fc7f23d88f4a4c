package systems

import (
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

const cooldown = 160 * time.Millisecond

var testFire = FireParams{
	SpawnOffset: 30,
	Speed:       500,
	Lifetime:    2 * time.Second,
	Scale:       0.03,
}

// spawnShip creates a player ship like the game does, minus sprites.
func spawnShip(w *ecs.World, pos r2.Vec, rotation float64) ecs.Entity {
	m := ecs.NewMap6[
		components.Transform,
		components.Velocity,
		components.MovementController,
		components.Steering,
		components.Weapon,
		components.Ship,
	](w)
	tr := components.Transform{Position: pos, Z: 1, Rotation: rotation, Scale: 1}
	vel := components.Velocity{}
	mc := components.MovementController{MaxSpeed: 320}
	st := components.Steering{RateRad: 2 * math.Pi, MinDistance: 50}
	wp := components.NewWeapon(cooldown)
	ship := components.Ship{ThrustSpeed: 320}
	e := m.NewEntity(&tr, &vel, &mc, &st, &wp, &ship)

	ecs.NewMap[components.Player](w).Add(e, &components.Player{})
	ecs.NewMap[components.ScreenWrap](w).Add(e, &components.ScreenWrap{})
	return e
}

type projectileView struct {
	entity ecs.Entity
	tr     components.Transform
	vel    components.Velocity
	proj   components.Projectile
}

func projectiles(w *ecs.World) []projectileView {
	var out []projectileView
	query := ecs.NewFilter3[components.Transform, components.Velocity, components.Projectile](w).Query()
	for query.Next() {
		tr, vel, proj := query.Get()
		out = append(out, projectileView{entity: query.Entity(), tr: *tr, vel: *vel, proj: *proj})
	}
	return out
}

func vecNear(a, b r2.Vec, tol float64) bool {
	return r2.Norm(r2.Sub(a, b)) <= tol
}
