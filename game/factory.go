package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

// spawnShip creates the player ship facing +Y at pos.
func (g *Game) spawnShip(pos r2.Vec) ecs.Entity {
	cfg := g.cfg

	mapper := ecs.NewMap8[
		components.Transform,
		components.Velocity,
		components.MovementController,
		components.Steering,
		components.Weapon,
		components.Ship,
		components.Sprite,
		components.PlayerAnimation,
	](g.world)

	tr := components.Transform{Position: pos, Z: cfg.Ship.Z, Scale: cfg.Ship.Scale}
	vel := components.Velocity{}
	mc := components.MovementFromConfig(cfg)
	steering := components.SteeringFromConfig(cfg)
	weapon := components.NewWeapon(cfg.Derived.WeaponCooldown)
	ship := components.Ship{ThrustSpeed: cfg.Ship.Speed}
	sprite := components.Sprite{Visible: true}
	anim := components.NewPlayerAnimation(components.LayoutFromConfig(cfg))

	e := mapper.NewEntity(&tr, &vel, &mc, &steering, &weapon, &ship, &sprite, &anim)

	// Tags
	ecs.NewMap[components.Player](g.world).Add(e, &components.Player{})
	ecs.NewMap[components.ScreenWrap](g.world).Add(e, &components.ScreenWrap{})
	return e
}

// spawnEngineExhaust creates the hidden exhaust effect pinned behind owner.
// It plays while thrust is held.
func (g *Game) spawnEngineExhaust(owner ecs.Entity) ecs.Entity {
	cfg := g.cfg

	mapper := ecs.NewMap6[
		components.Transform,
		components.Effect,
		components.Sprite,
		components.AnimationIndices,
		components.AnimationTimer,
		components.Attachment,
	](g.world)

	indices := components.NewAnimationIndices(cfg.Engine.FirstFrame, cfg.Engine.LastFrame)
	tr := components.Transform{Z: cfg.Engine.Z, Scale: cfg.Ship.Scale}
	effect := components.Effect{Kind: components.EffectEngineExhaust}
	sprite := components.Sprite{AtlasIndex: indices.First}
	timer := components.NewAnimationTimer(cfg.Derived.EngineInterval)
	att := components.Attachment{
		Owner:  owner,
		Offset: r2.Vec{Y: cfg.Engine.OffsetY},
		Z:      cfg.Engine.Z - cfg.Ship.Z,
	}

	return mapper.NewEntity(&tr, &effect, &sprite, &indices, &timer, &att)
}
