package components

import (
	"fmt"
	"time"

	"github.com/pthm-cable/nairan/config"
	"github.com/pthm-cable/nairan/timer"
)

// AnimationState is the player's animation state.
type AnimationState uint8

const (
	Idling AnimationState = iota
	Walking
)

func (s AnimationState) String() string {
	switch s {
	case Idling:
		return "idling"
	case Walking:
		return "walking"
	default:
		return fmt.Sprintf("AnimationState(%d)", uint8(s))
	}
}

// AnimationLayout describes frame counts and intervals per state.
type AnimationLayout struct {
	IdleFrames   int
	IdleInterval time.Duration
	WalkFrames   int
	WalkInterval time.Duration
}

// DefaultAnimationLayout is two idle frames at 500 ms and six walk frames at 50 ms.
var DefaultAnimationLayout = AnimationLayout{
	IdleFrames:   2,
	IdleInterval: 500 * time.Millisecond,
	WalkFrames:   6,
	WalkInterval: 50 * time.Millisecond,
}

// LayoutFromConfig returns the configured animation layout.
func LayoutFromConfig(cfg *config.Config) AnimationLayout {
	return AnimationLayout{
		IdleFrames:   cfg.Player.IdleFrames,
		IdleInterval: cfg.Derived.IdleInterval,
		WalkFrames:   cfg.Player.WalkFrames,
		WalkInterval: cfg.Derived.WalkInterval,
	}
}

// PlayerAnimation steps through idle and walk frames on a repeating timer.
type PlayerAnimation struct {
	layout AnimationLayout
	timer  timer.Timer
	frame  int
	state  AnimationState
}

// NewPlayerAnimation starts idling on frame 0.
func NewPlayerAnimation(layout AnimationLayout) PlayerAnimation {
	a := PlayerAnimation{layout: layout}
	a.enter(Idling)
	return a
}

func (a *PlayerAnimation) enter(state AnimationState) {
	interval := a.layout.IdleInterval
	if state == Walking {
		interval = a.layout.WalkInterval
	}
	a.state = state
	a.frame = 0
	a.timer = timer.New(interval, timer.Repeating)
}

func (a *PlayerAnimation) frames() int {
	if a.state == Walking {
		return a.layout.WalkFrames
	}
	return a.layout.IdleFrames
}

// UpdateTimer advances the timer and moves to the next frame on each wrap edge.
func (a *PlayerAnimation) UpdateTimer(dt time.Duration) {
	a.timer.Tick(dt)
	if !a.timer.Finished() {
		return
	}
	a.frame = (a.frame + 1) % a.frames()
}

// UpdateState switches state, restarting at frame 0 with a fresh timer.
// Setting the current state is a no-op.
func (a *PlayerAnimation) UpdateState(state AnimationState) {
	if a.state != state {
		a.enter(state)
	}
}

// Changed reports whether the frame advanced during the last UpdateTimer.
func (a *PlayerAnimation) Changed() bool { return a.timer.Finished() }

// AtlasIndex maps the frame into the sprite sheet.
// Walk frames follow the idle frames.
func (a *PlayerAnimation) AtlasIndex() int {
	if a.state == Walking {
		return a.layout.IdleFrames + a.frame
	}
	return a.frame
}

// Frame returns the frame within the current state.
func (a *PlayerAnimation) Frame() int { return a.frame }

// State returns the current state.
func (a *PlayerAnimation) State() AnimationState { return a.state }

// Sprite is the render-facing view of an entity.
type Sprite struct {
	AtlasIndex int
	FlipX      bool
	Visible    bool
}

// EffectKind identifies a triggered animation.
type EffectKind uint8

const (
	EffectEngineExhaust EffectKind = iota + 1
)

func (k EffectKind) String() string {
	switch k {
	case EffectEngineExhaust:
		return "engine_exhaust"
	default:
		return fmt.Sprintf("EffectKind(%d)", uint8(k))
	}
}

// Effect selects which start/stop trigger an entity responds to.
type Effect struct {
	Kind EffectKind
}

// AnimationIndices bounds the atlas frames of a looping animation.
type AnimationIndices struct {
	First, Last int
}

// NewAnimationIndices panics if the range is empty.
func NewAnimationIndices(first, last int) AnimationIndices {
	if first < 0 || last < first {
		panic(fmt.Sprintf("components: invalid animation indices [%d,%d]", first, last))
	}
	return AnimationIndices{First: first, Last: last}
}

// AnimationTimer paces a looping animation.
type AnimationTimer struct {
	Timer timer.Timer
}

// NewAnimationTimer returns a repeating timer advancing one frame per interval.
func NewAnimationTimer(interval time.Duration) AnimationTimer {
	if interval <= 0 {
		panic(fmt.Sprintf("components: invalid animation interval %v", interval))
	}
	return AnimationTimer{Timer: timer.New(interval, timer.Repeating)}
}

// AnimationPlaying tags entities whose triggered animation is running.
type AnimationPlaying struct{}
