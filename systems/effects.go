package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/nairan/components"
)

// EffectSystem starts, stops and advances triggered looping animations.
// Only entities tagged AnimationPlaying are advanced.
type EffectSystem struct {
	world   *ecs.World
	all     *ecs.Filter4[components.Effect, components.Sprite, components.AnimationTimer, components.AnimationIndices]
	playing *ecs.Filter2[components.Effect, components.Sprite]
	advance *ecs.Filter3[components.AnimationIndices, components.AnimationTimer, components.Sprite]
	tags    *ecs.Map[components.AnimationPlaying]
	pending []ecs.Entity
}

// NewEffectSystem creates a new effect system.
func NewEffectSystem(w *ecs.World) *EffectSystem {
	return &EffectSystem{
		world:   w,
		all:     ecs.NewFilter4[components.Effect, components.Sprite, components.AnimationTimer, components.AnimationIndices](w),
		playing: ecs.NewFilter2[components.Effect, components.Sprite](w).With(ecs.C[components.AnimationPlaying]()),
		advance: ecs.NewFilter3[components.AnimationIndices, components.AnimationTimer, components.Sprite](w).With(ecs.C[components.AnimationPlaying]()),
		tags:    ecs.NewMap[components.AnimationPlaying](w),
	}
}

// Start rewinds every effect of the given kind to its first frame, resets its
// timer and shows it. Effects already playing are rewound too.
func (s *EffectSystem) Start(kind components.EffectKind) int {
	s.pending = s.pending[:0]
	started := 0
	query := s.all.Query()
	for query.Next() {
		effect, sprite, timer, indices := query.Get()
		if effect.Kind != kind {
			continue
		}
		sprite.AtlasIndex = indices.First
		sprite.Visible = true
		timer.Timer.Reset()
		started++

		e := query.Entity()
		if !s.tags.Has(e) {
			s.pending = append(s.pending, e)
		}
	}

	for _, e := range s.pending {
		s.tags.Add(e, &components.AnimationPlaying{})
	}
	return started
}

// Stop hides every playing effect of the given kind. The frame is left as is.
func (s *EffectSystem) Stop(kind components.EffectKind) int {
	s.pending = s.pending[:0]
	query := s.playing.Query()
	for query.Next() {
		effect, sprite := query.Get()
		if effect.Kind != kind {
			continue
		}
		sprite.Visible = false
		s.pending = append(s.pending, query.Entity())
	}

	for _, e := range s.pending {
		s.tags.Remove(e)
	}
	return len(s.pending)
}

// Advance steps each playing effect on its timer edge, wrapping last to first.
func (s *EffectSystem) Advance() {
	query := s.advance.Query()
	for query.Next() {
		indices, timer, sprite := query.Get()
		if !timer.Timer.JustFinished() {
			continue
		}
		if sprite.AtlasIndex < indices.First || sprite.AtlasIndex > indices.Last {
			query.Close()
			panic(fmt.Sprintf("systems: effect frame %d outside [%d,%d]", sprite.AtlasIndex, indices.First, indices.Last))
		}
		if sprite.AtlasIndex == indices.Last {
			sprite.AtlasIndex = indices.First
		} else {
			sprite.AtlasIndex++
		}
	}
}
