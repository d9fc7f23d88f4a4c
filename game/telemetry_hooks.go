package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/systems"
	"github.com/pthm-cable/nairan/telemetry"
)

// record forwards a non-zero count to the collector and metrics.
func (g *Game) record(typ telemetry.EventType, n int) {
	g.events.Record(telemetry.NewEvent(g.collector.Tick(), typ, n))
}

// recordFire splits one tick's fire-control result into events.
func (g *Game) recordFire(res systems.FireResult) {
	g.record(telemetry.EventShotFired, res.Fired)
	g.record(telemetry.EventShotDropped, res.Dropped)
	g.record(telemetry.EventFireError, res.Missing)
}

// flushTelemetry writes a stats window once enough simulated time has passed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}
	g.writeWindow(g.collector.Flush(g.shipSample()))
}

func (g *Game) writeWindow(stats telemetry.WindowStats) {
	systemStats := g.perf.Stats()
	perfStats := systemStats.GroupBy(g.registry.Phase)
	g.metrics.ObservePerf(perfStats)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		systemStats.LogSections(g.systemIDs(), g.registry.Name)
	}

	if err := g.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

func (g *Game) systemIDs() []string {
	all := g.registry.All()
	ids := make([]string, len(all))
	for i, info := range all {
		ids[i] = info.ID
	}
	return ids
}

// shipSample reads the ship's end-of-window state.
func (g *Game) shipSample() telemetry.ShipSample {
	if !g.world.Alive(g.ship) {
		return telemetry.ShipSample{}
	}
	tr := g.transforms.Get(g.ship)
	vel := g.velocities.Get(g.ship)
	anim := g.animations.Get(g.ship)
	return telemetry.ShipSample{
		X:        tr.Position.X,
		Y:        tr.Position.Y,
		Rotation: tr.Rotation,
		Speed:    r2.Norm(vel.Linear),
		Anim:     anim.State().String(),
	}
}
