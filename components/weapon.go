package components

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nairan/timer"
)

// Weapon gates firing behind a once cooldown timer.
// The weapon is Ready while the cooldown is finished and Cooling otherwise.
type Weapon struct {
	Cooldown timer.Timer
	Delay    time.Duration // cooldown restarted on each shot
}

// NewWeapon returns a weapon that can fire immediately.
func NewWeapon(delay time.Duration) Weapon {
	return Weapon{Cooldown: timer.Finished(delay), Delay: delay}
}

// Ready reports whether the weapon may fire.
func (w *Weapon) Ready() bool { return w.Cooldown.Finished() }

// Trigger starts a fresh cooldown.
func (w *Weapon) Trigger() {
	w.Cooldown = timer.New(w.Delay, timer.Once)
}

// Projectile is a short-lived shot.
type Projectile struct {
	Despawn timer.Timer
	Owner   ecs.Entity
}

// NewProjectile returns a projectile that expires after lifetime.
func NewProjectile(owner ecs.Entity, lifetime time.Duration) Projectile {
	return Projectile{Despawn: timer.New(lifetime, timer.Once), Owner: owner}
}

// FireRequest asks fire control to shoot from an entity.
type FireRequest struct {
	Entity ecs.Entity
}

// FireQueue buffers fire requests for a single tick.
type FireQueue struct {
	requests []FireRequest
}

// Push enqueues a request.
func (q *FireQueue) Push(e ecs.Entity) {
	q.requests = append(q.requests, FireRequest{Entity: e})
}

// Len returns the number of pending requests.
func (q *FireQueue) Len() int { return len(q.requests) }

// Drain calls fn for every pending request in order and empties the queue.
func (q *FireQueue) Drain(fn func(FireRequest)) {
	for _, r := range q.requests {
		fn(r)
	}
	q.requests = q.requests[:0]
}
