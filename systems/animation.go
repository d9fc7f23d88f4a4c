package systems

import (
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/audio"
	"github.com/pthm-cable/nairan/components"
)

// PlayerAnimationSystem derives the animation state from movement intent,
// keeps the sprite in sync and requests footstep sounds.
type PlayerAnimationSystem struct {
	filter     *ecs.Filter3[components.MovementController, components.Sprite, components.PlayerAnimation]
	sink       audio.Sink
	steps      []audio.Clip
	stepFrames map[int]bool
	rng        *rand.Rand
}

// NewPlayerAnimationSystem creates the system. Steps on the given walk frames
// play a random clip from steps.
func NewPlayerAnimationSystem(w *ecs.World, sink audio.Sink, steps []audio.Clip, stepFrames map[int]bool, rng *rand.Rand) *PlayerAnimationSystem {
	if sink == nil {
		sink = audio.Discard
	}
	return &PlayerAnimationSystem{
		filter:     ecs.NewFilter3[components.MovementController, components.Sprite, components.PlayerAnimation](w),
		sink:       sink,
		steps:      steps,
		stepFrames: stepFrames,
		rng:        rng,
	}
}

// Update runs state derivation, atlas update and step sounds in that order.
// It returns the number of step sounds requested.
func (s *PlayerAnimationSystem) Update() int {
	played := 0
	query := s.filter.Query()
	for query.Next() {
		mc, sprite, anim := query.Get()

		// Facing only changes with horizontal intent
		if mc.Intent.X != 0 {
			sprite.FlipX = mc.Intent.X < 0
		}

		state := components.Walking
		if mc.Intent == (r2.Vec{}) {
			state = components.Idling
		}
		anim.UpdateState(state)

		if !anim.Changed() {
			continue
		}
		sprite.AtlasIndex = anim.AtlasIndex()

		if anim.State() == components.Walking && s.stepFrames[anim.Frame()] {
			if clip, ok := audio.Pick(s.rng, s.steps); ok {
				s.sink.Play(clip)
				played++
			}
		}
	}
	return played
}
