// Package systems contains ECS systems for the simulation.
package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nairan/components"
)

// TimerSystem advances every timer-bearing component by the frame delta.
// It runs before anything reads a finished edge.
type TimerSystem struct {
	weapons     *ecs.Filter1[components.Weapon]
	projectiles *ecs.Filter1[components.Projectile]
	players     *ecs.Filter1[components.PlayerAnimation]
	animations  *ecs.Filter1[components.AnimationTimer]
}

// NewTimerSystem creates a new timer system.
func NewTimerSystem(w *ecs.World) *TimerSystem {
	return &TimerSystem{
		weapons:     ecs.NewFilter1[components.Weapon](w),
		projectiles: ecs.NewFilter1[components.Projectile](w),
		players:     ecs.NewFilter1[components.PlayerAnimation](w),
		animations:  ecs.NewFilter1[components.AnimationTimer](w),
	}
}

// Update ticks all timers by dt.
func (s *TimerSystem) Update(dt time.Duration) {
	wq := s.weapons.Query()
	for wq.Next() {
		wq.Get().Cooldown.Tick(dt)
	}

	pq := s.projectiles.Query()
	for pq.Next() {
		pq.Get().Despawn.Tick(dt)
	}

	aq := s.players.Query()
	for aq.Next() {
		aq.Get().UpdateTimer(dt)
	}

	tq := s.animations.Query()
	for tq.Next() {
		tq.Get().Timer.Tick(dt)
	}
}
