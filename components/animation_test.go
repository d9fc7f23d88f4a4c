package components

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/nairan/config"
)

func TestPlayerAnimationIdleCycle(t *testing.T) {
	a := NewPlayerAnimation(DefaultAnimationLayout)
	require.Equal(t, Idling, a.State())

	a.UpdateTimer(499 * time.Millisecond)
	assert.Equal(t, 0, a.Frame())
	assert.False(t, a.Changed())

	a.UpdateTimer(time.Millisecond)
	assert.Equal(t, 1, a.Frame())
	assert.True(t, a.Changed())

	a.UpdateTimer(500 * time.Millisecond)
	assert.Equal(t, 0, a.Frame())
	assert.Equal(t, 0, a.AtlasIndex())
}

func TestPlayerAnimationWalkCycle(t *testing.T) {
	a := NewPlayerAnimation(DefaultAnimationLayout)
	a.UpdateTimer(500 * time.Millisecond)
	require.Equal(t, 1, a.Frame())

	a.UpdateState(Walking)
	assert.Equal(t, 0, a.Frame(), "state change restarts at frame 0")
	assert.False(t, a.Changed())
	assert.Equal(t, 2, a.AtlasIndex())

	for i := 1; i <= 6; i++ {
		a.UpdateTimer(50 * time.Millisecond)
		assert.True(t, a.Changed())
		assert.Equal(t, i%6, a.Frame())
		assert.Equal(t, 2+i%6, a.AtlasIndex())
	}
}

func TestPlayerAnimationSameStateKeepsFrame(t *testing.T) {
	a := NewPlayerAnimation(DefaultAnimationLayout)
	a.UpdateState(Walking)
	a.UpdateTimer(50 * time.Millisecond)
	a.UpdateTimer(20 * time.Millisecond)

	a.UpdateState(Walking)
	assert.Equal(t, 1, a.Frame())

	// The timer was not reset either: 30 ms more completes the next frame.
	a.UpdateTimer(30 * time.Millisecond)
	assert.Equal(t, 2, a.Frame())
}

func TestPlayerAnimationLongTickAdvancesOneFrame(t *testing.T) {
	a := NewPlayerAnimation(DefaultAnimationLayout)
	a.UpdateTimer(500 * time.Millisecond)
	assert.Equal(t, 1, a.AtlasIndex(), "idle frames index the atlas directly")

	a.UpdateState(Walking)
	a.UpdateTimer(150 * time.Millisecond) // three walk intervals
	assert.True(t, a.Changed())
	assert.Equal(t, 1, a.Frame())
	assert.Equal(t, 3, a.AtlasIndex())
}

func TestWeaponReadyAndTrigger(t *testing.T) {
	w := NewWeapon(160 * time.Millisecond)
	require.True(t, w.Ready())

	w.Trigger()
	assert.False(t, w.Ready())

	w.Cooldown.Tick(159 * time.Millisecond)
	assert.False(t, w.Ready())
	w.Cooldown.Tick(time.Millisecond)
	assert.True(t, w.Ready())
}

func TestTransformAxes(t *testing.T) {
	tr := Transform{}
	assert.InDelta(t, 0, tr.Forward().X, 1e-12)
	assert.InDelta(t, 1, tr.Forward().Y, 1e-12)
	assert.InDelta(t, 1, tr.Right().X, 1e-12)

	tr.Rotation = 1.5707963267948966 // quarter turn CCW faces -X
	assert.InDelta(t, -1, tr.Forward().X, 1e-12)
	assert.InDelta(t, 0, tr.Forward().Y, 1e-12)
	assert.InDelta(t, 1, tr.Right().Y, 1e-12)
}

func TestInvalidIndicesPanic(t *testing.T) {
	assert.Panics(t, func() { NewAnimationIndices(5, 2) })
	assert.Panics(t, func() { NewAnimationTimer(0) })
	assert.NotPanics(t, func() { NewAnimationIndices(0, 7) })
}

func TestComponentsReadDerivedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steering:\n  rate_deg: 90\nengine:\n  fps: 10\n"), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.InDelta(t, math.Pi/2, SteeringFromConfig(cfg).RateRad, 1e-12)

	tm := NewAnimationTimer(cfg.Derived.EngineInterval)
	assert.Equal(t, 100*time.Millisecond, tm.Timer.Duration())
}
