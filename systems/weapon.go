package systems

import (
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
	"github.com/pthm-cable/nairan/config"
)

// FireParams configures projectile spawning.
type FireParams struct {
	SpawnOffset float64       // distance ahead of the firer
	Speed       float64       // projectile speed along the firer's forward axis
	Lifetime    time.Duration // projectile despawn delay
	Scale       float64       // projectile sprite scale
}

// FireParamsFromConfig returns the configured fire parameters.
func FireParamsFromConfig(cfg *config.Config) FireParams {
	return FireParams{
		SpawnOffset: cfg.Weapon.SpawnOffset,
		Speed:       cfg.Projectile.Speed,
		Lifetime:    cfg.Derived.ProjectileLife,
		Scale:       0.03,
	}
}

// FireResult counts what happened to one tick's fire requests.
type FireResult struct {
	Fired   int
	Dropped int // weapon still cooling
	Missing int // entity gone or has no weapon
}

// FireControlSystem drains fire requests and spawns projectiles.
type FireControlSystem struct {
	world      *ecs.World
	weapons    *ecs.Map[components.Weapon]
	transforms *ecs.Map[components.Transform]
	spawner    *ecs.Map4[components.Transform, components.Velocity, components.Projectile, components.Sprite]
	params     FireParams

	errLimiter *rate.Limiter
	suppressed int
}

// NewFireControlSystem creates a fire control system. Errors for requests
// naming missing entities are logged at most once per logEvery.
func NewFireControlSystem(w *ecs.World, params FireParams, logEvery time.Duration) *FireControlSystem {
	limit := rate.Inf
	if logEvery > 0 {
		limit = rate.Every(logEvery)
	}
	return &FireControlSystem{
		world:      w,
		weapons:    ecs.NewMap[components.Weapon](w),
		transforms: ecs.NewMap[components.Transform](w),
		spawner:    ecs.NewMap4[components.Transform, components.Velocity, components.Projectile, components.Sprite](w),
		params:     params,
		errLimiter: rate.NewLimiter(limit, 1),
	}
}

// Update consumes every queued request exactly once.
func (s *FireControlSystem) Update(queue *components.FireQueue) FireResult {
	var res FireResult
	type shot struct {
		owner ecs.Entity
		from  components.Transform
	}
	var shots []shot

	queue.Drain(func(req components.FireRequest) {
		e := req.Entity
		if e.IsZero() || !s.world.Alive(e) || !s.weapons.Has(e) || !s.transforms.Has(e) {
			res.Missing++
			s.logMissing(e)
			return
		}

		weapon := s.weapons.Get(e)
		if !weapon.Ready() {
			res.Dropped++
			return
		}
		weapon.Trigger()
		shots = append(shots, shot{owner: e, from: *s.transforms.Get(e)})
	})

	for _, sh := range shots {
		s.spawn(sh.owner, &sh.from)
		res.Fired++
	}
	return res
}

func (s *FireControlSystem) spawn(owner ecs.Entity, from *components.Transform) ecs.Entity {
	fwd := from.Forward()
	tr := components.Transform{
		Position: r2.Add(from.Position, r2.Scale(s.params.SpawnOffset, fwd)),
		Z:        from.Z,
		Rotation: from.Rotation,
		Scale:    s.params.Scale,
	}
	vel := components.Velocity{Linear: r2.Scale(s.params.Speed, fwd)}
	proj := components.NewProjectile(owner, s.params.Lifetime)
	sprite := components.Sprite{Visible: true}
	return s.spawner.NewEntity(&tr, &vel, &proj, &sprite)
}

func (s *FireControlSystem) logMissing(e ecs.Entity) {
	if !s.errLimiter.Allow() {
		s.suppressed++
		return
	}
	slog.Error("fire request for entity without weapon",
		"entity", e,
		"suppressed", s.suppressed,
	)
	s.suppressed = 0
}
