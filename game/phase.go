package game

import (
	"fmt"

	"github.com/pthm-cable/nairan/telemetry"
)

// Phase is one stage of a simulation step. Phases run in declaration order.
type Phase uint8

const (
	// PhaseTickTimers advances every timer so later phases see this tick's edges.
	PhaseTickTimers Phase = iota
	// PhaseRecordInput turns input into intent, fire requests and effect triggers.
	PhaseRecordInput
	// PhaseUpdate moves, steers, wraps and animates.
	PhaseUpdate
	// PhaseDespawn removes projectiles whose lifetime ended this tick.
	PhaseDespawn
	// PhaseTelemetry samples and flushes stats.
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{
	telemetry.PhaseTickTimers,
	telemetry.PhaseRecordInput,
	telemetry.PhaseUpdate,
	telemetry.PhaseDespawn,
	telemetry.PhaseTelemetry,
}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Phases returns every phase in run order.
func Phases() []Phase {
	out := make([]Phase, phaseCount)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}
