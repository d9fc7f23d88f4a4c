package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nairan/components"
	"github.com/pthm-cable/nairan/input"
)

// IntentSystem records player input into controllers and the fire queue.
type IntentSystem struct {
	ships       *ecs.Filter3[components.MovementController, components.Transform, components.Ship]
	walkers     *ecs.Filter1[components.MovementController]
	shooters    *ecs.Filter1[components.Weapon]
	bindings    input.Bindings
	directional bool
}

// NewIntentSystem creates an intent recorder. directional selects WASD
// movement instead of thrust along the ship's facing.
func NewIntentSystem(w *ecs.World, bindings input.Bindings, directional bool) *IntentSystem {
	return &IntentSystem{
		ships:       ecs.NewFilter3[components.MovementController, components.Transform, components.Ship](w).With(ecs.C[components.Player]()),
		walkers:     ecs.NewFilter1[components.MovementController](w).With(ecs.C[components.Player]()),
		shooters:    ecs.NewFilter1[components.Weapon](w).With(ecs.C[components.Player]()),
		bindings:    bindings,
		directional: directional,
	}
}

// RecordMovement writes the intent for every player controller.
func (s *IntentSystem) RecordMovement(in input.State) {
	if s.directional {
		intent := input.DirectionalIntent(in)
		query := s.walkers.Query()
		for query.Next() {
			query.Get().Intent = intent
		}
		return
	}

	query := s.ships.Query()
	for query.Next() {
		mc, tr, ship := query.Get()
		mc.Intent = s.bindings.ShipIntent(in, tr.Forward())
		mc.MaxSpeed = ship.ThrustSpeed
	}
}

// RecordFire queues a fire request for every armed player when the trigger is pulled.
func (s *IntentSystem) RecordFire(in input.State, queue *components.FireQueue) {
	if !s.bindings.WantsFire(in) {
		return
	}
	query := s.shooters.Query()
	for query.Next() {
		queue.Push(query.Entity())
	}
}
