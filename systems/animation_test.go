package systems

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/audio"
	"github.com/pthm-cable/nairan/components"
)

type walker struct {
	w      *ecs.World
	e      ecs.Entity
	timers *TimerSystem
	anim   *PlayerAnimationSystem
	rec    *audio.Recorder
	mc     *ecs.Map[components.MovementController]
	sprite *ecs.Map[components.Sprite]
	pa     *ecs.Map[components.PlayerAnimation]
}

func newWalker(t *testing.T) *walker {
	t.Helper()
	w := ecs.NewWorld()
	m := ecs.NewMap3[components.MovementController, components.Sprite, components.PlayerAnimation](w)
	mc := components.MovementController{MaxSpeed: 400}
	sprite := components.Sprite{Visible: true}
	pa := components.NewPlayerAnimation(components.DefaultAnimationLayout)
	e := m.NewEntity(&mc, &sprite, &pa)

	rec := &audio.Recorder{}
	steps := []audio.Clip{10, 11, 12, 13}
	return &walker{
		w:      w,
		e:      e,
		timers: NewTimerSystem(w),
		anim:   NewPlayerAnimationSystem(w, rec, steps, map[int]bool{2: true, 5: true}, rand.New(rand.NewPCG(1, 1))),
		rec:    rec,
		mc:     ecs.NewMap[components.MovementController](w),
		sprite: ecs.NewMap[components.Sprite](w),
		pa:     ecs.NewMap[components.PlayerAnimation](w),
	}
}

// tick runs the timer phase then the update phase, like the game.
func (wk *walker) tick(dt time.Duration, intent r2.Vec) int {
	wk.timers.Update(dt)
	wk.mc.Get(wk.e).Intent = intent
	return wk.anim.Update()
}

func TestIdleAnimationCadence(t *testing.T) {
	wk := newWalker(t)

	var frames []int
	for i := 0; i < 4; i++ {
		wk.tick(500*time.Millisecond, r2.Vec{})
		frames = append(frames, wk.sprite.Get(wk.e).AtlasIndex)
	}
	assert.Equal(t, []int{1, 0, 1, 0}, frames)
	assert.Equal(t, components.Idling, wk.pa.Get(wk.e).State())
	assert.Empty(t, wk.rec.Clips)
}

func TestWalkAnimationAndSteps(t *testing.T) {
	wk := newWalker(t)
	wk.tick(300*time.Millisecond, r2.Vec{})

	// Entering Walking resets to frame 0 with a fresh timer
	wk.tick(10*time.Millisecond, r2.Vec{X: 1})
	pa := wk.pa.Get(wk.e)
	require.Equal(t, components.Walking, pa.State())
	assert.Equal(t, 0, pa.Frame())

	var atlas []int
	for i := 0; i < 6; i++ {
		played := wk.tick(50*time.Millisecond, r2.Vec{X: 1})
		atlas = append(atlas, wk.sprite.Get(wk.e).AtlasIndex)
		frame := wk.pa.Get(wk.e).Frame()
		if frame == 2 || frame == 5 {
			assert.Equal(t, 1, played, "step on frame %d", frame)
		} else {
			assert.Zero(t, played, "no step on frame %d", frame)
		}
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 2}, atlas)
	assert.Len(t, wk.rec.Clips, 2)
	for _, c := range wk.rec.Clips {
		assert.Contains(t, []audio.Clip{10, 11, 12, 13}, c)
	}

	// Back to idle on zero intent
	wk.tick(10*time.Millisecond, r2.Vec{})
	assert.Equal(t, components.Idling, wk.pa.Get(wk.e).State())
	assert.Equal(t, 0, wk.pa.Get(wk.e).Frame())
}

func TestSpriteFlipPersists(t *testing.T) {
	wk := newWalker(t)

	wk.tick(frame, r2.Vec{X: -1})
	assert.True(t, wk.sprite.Get(wk.e).FlipX)

	wk.tick(frame, r2.Vec{Y: 1})
	assert.True(t, wk.sprite.Get(wk.e).FlipX, "vertical intent keeps facing")

	wk.tick(frame, r2.Vec{})
	assert.True(t, wk.sprite.Get(wk.e).FlipX, "idle keeps facing")

	wk.tick(frame, r2.Vec{X: 1})
	assert.False(t, wk.sprite.Get(wk.e).FlipX)
}

func TestStepSoundsNeedPool(t *testing.T) {
	w := ecs.NewWorld()
	m := ecs.NewMap3[components.MovementController, components.Sprite, components.PlayerAnimation](w)
	mc := components.MovementController{Intent: r2.Vec{X: 1}, MaxSpeed: 400}
	sprite := components.Sprite{}
	pa := components.NewPlayerAnimation(components.DefaultAnimationLayout)
	m.NewEntity(&mc, &sprite, &pa)

	timers := NewTimerSystem(w)
	sys := NewPlayerAnimationSystem(w, nil, nil, map[int]bool{2: true}, rand.New(rand.NewPCG(1, 2)))
	sys.Update()
	for i := 0; i < 6; i++ {
		timers.Update(50 * time.Millisecond)
		assert.Zero(t, sys.Update())
	}
}
