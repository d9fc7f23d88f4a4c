package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

func attach(w *ecs.World, owner ecs.Entity, offset r2.Vec) ecs.Entity {
	m := ecs.NewMap2[components.Transform, components.Attachment](w)
	return m.NewEntity(
		&components.Transform{Scale: 1},
		&components.Attachment{Owner: owner, Offset: offset, Z: -0.5},
	)
}

func TestAttachmentFollowsOwner(t *testing.T) {
	w := ecs.NewWorld()
	ship := spawnShip(w, r2.Vec{X: 100, Y: 50}, math.Pi/2)
	exhaust := attach(w, ship, r2.Vec{Y: -28})

	sys := NewAttachmentSystem(w)
	require.Zero(t, sys.Update(w))

	tr := ecs.NewMap[components.Transform](w).Get(exhaust)
	// Facing -x, so "behind" is +x
	assert.True(t, vecNear(tr.Position, r2.Vec{X: 128, Y: 50}, 1e-9), "position %v", tr.Position)
	assert.Equal(t, math.Pi/2, tr.Rotation)
	assert.InDelta(t, 0.5, tr.Z, 1e-12)
}

func TestAttachmentOrphanRemoved(t *testing.T) {
	w := ecs.NewWorld()
	ship := spawnShip(w, r2.Vec{}, 0)
	exhaust := attach(w, ship, r2.Vec{Y: -28})
	loose := attach(w, ecs.Entity{}, r2.Vec{})

	w.RemoveEntity(ship)

	assert.Equal(t, 2, NewAttachmentSystem(w).Update(w))
	assert.False(t, w.Alive(exhaust))
	assert.False(t, w.Alive(loose))
}
