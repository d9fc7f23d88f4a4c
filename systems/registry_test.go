package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryPhases(t *testing.T) {
	reg := NewSystemRegistry()

	assert.Equal(t, []string{IDTimers}, reg.InPhase("tick_timers"))
	assert.Equal(t, []string{IDIntent, IDFireControl, IDEffectTriggers}, reg.InPhase("record_input"))
	assert.Equal(t, []string{
		IDMovement, IDSteering, IDIntegrate, IDWrap, IDAttach, IDPlayerAnimation, IDEffects,
	}, reg.InPhase("update"))
	assert.Equal(t, []string{IDDespawn}, reg.InPhase("despawn"))
	assert.Equal(t, []string{IDTelemetry}, reg.InPhase("telemetry"))
	assert.Empty(t, reg.InPhase("render"))

	info, ok := reg.Get(IDFireControl)
	require.True(t, ok)
	assert.Equal(t, "record_input", info.Phase)
	assert.Equal(t, "Fire Control", info.Name)
}

func TestRegistryFallbacks(t *testing.T) {
	reg := NewSystemRegistry()

	assert.Equal(t, "Screen Wrap", reg.Name(IDWrap))
	assert.Equal(t, "update", reg.Phase(IDWrap))
	assert.Equal(t, "unknown", reg.Name("unknown"))
	assert.Equal(t, "unknown", reg.Phase("unknown"))

	_, ok := reg.Get("unknown")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewSystemRegistry()
	n := len(reg.All())

	reg.Register(SystemInfo{ID: "extra", Name: "Extra", Phase: "update"})
	assert.Len(t, reg.All(), n+1)
	assert.Equal(t, "extra", reg.InPhase("update")[7])

	assert.Panics(t, func() {
		reg.Register(SystemInfo{ID: IDWrap, Name: "Again", Phase: "update"})
	})
}
