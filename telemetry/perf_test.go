package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseTickTimers)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseUpdate)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseTickTimers]; !ok {
		t.Error("expected tick_timers phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseUpdate]; !ok {
		t.Error("expected update phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseTickTimers)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}

	if stats.P90TickDuration < stats.MinTickDuration || stats.P90TickDuration > stats.MaxTickDuration {
		t.Errorf("p90 %v outside [%v, %v]", stats.P90TickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	// Slow phase should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures duration
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// With 16ms frames, expect ~60 FPS (allow range 40-80)
	if stats.FPS < 40 || stats.FPS > 80 {
		t.Errorf("expected FPS between 40-80 with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		P90TickDuration: 400 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseTickTimers:  10,
			PhaseRecordInput: 20,
			PhaseUpdate:      60,
			PhaseDespawn:     5,
			PhaseTelemetry:   5,
		},
	}

	row := stats.ToCSV(42)

	if row.WindowEnd != 42 || row.AvgTickUS != 250 || row.P90TickUS != 400 {
		t.Errorf("unexpected timing columns: %+v", row)
	}
	if row.UpdatePct != 60 || row.RecordInput != 20 || row.TickTimersPct != 10 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}

func TestPerfStats_GroupBy(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 100 * time.Microsecond,
		PhaseAvg: map[string]time.Duration{
			"movement":  20 * time.Microsecond,
			"integrate": 30 * time.Microsecond,
			"timers":    10 * time.Microsecond,
			"stray":     5 * time.Microsecond,
		},
		PhasePct: map[string]float64{
			"movement":  20,
			"integrate": 30,
			"timers":    10,
			"stray":     5,
		},
	}
	phaseOf := map[string]string{
		"movement":  PhaseUpdate,
		"integrate": PhaseUpdate,
		"timers":    PhaseTickTimers,
	}
	group := func(section string) string {
		if p, ok := phaseOf[section]; ok {
			return p
		}
		return section
	}

	grouped := stats.GroupBy(group)

	if got := grouped.PhaseAvg[PhaseUpdate]; got != 50*time.Microsecond {
		t.Errorf("update avg = %v, want 50us", got)
	}
	if got := grouped.PhasePct[PhaseUpdate]; got != 50 {
		t.Errorf("update pct = %v, want 50", got)
	}
	if got := grouped.PhasePct[PhaseTickTimers]; got != 10 {
		t.Errorf("tick_timers pct = %v, want 10", got)
	}
	if got := grouped.PhasePct["stray"]; got != 5 {
		t.Errorf("ungrouped section pct = %v, want 5", got)
	}
	if grouped.AvgTickDuration != stats.AvgTickDuration {
		t.Error("tick timings should carry over")
	}
	if _, ok := stats.PhaseAvg[PhaseUpdate]; ok {
		t.Error("GroupBy must not modify the receiver")
	}
}
