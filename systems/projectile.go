package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nairan/components"
)

// DespawnSystem removes projectiles whose lifetime just ran out.
type DespawnSystem struct {
	filter  *ecs.Filter1[components.Projectile]
	expired []ecs.Entity
}

// NewDespawnSystem creates a new despawn system.
func NewDespawnSystem(w *ecs.World) *DespawnSystem {
	return &DespawnSystem{
		filter: ecs.NewFilter1[components.Projectile](w),
	}
}

// Update removes every projectile on its just-finished tick and returns how many.
// Removal waits until the query is done.
func (s *DespawnSystem) Update(w *ecs.World) int {
	s.expired = s.expired[:0]
	query := s.filter.Query()
	for query.Next() {
		if query.Get().Despawn.JustFinished() {
			s.expired = append(s.expired, query.Entity())
		}
	}

	for _, e := range s.expired {
		w.RemoveEntity(e)
	}
	return len(s.expired)
}
