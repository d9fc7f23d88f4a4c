package telemetry

import "time"

// Collector accumulates events within a stats window and produces WindowStats.
// Windows are measured in simulated time, so a paused game never flushes.
type Collector struct {
	window time.Duration

	tick        int32
	simTime     time.Duration
	windowStart time.Duration

	// Current window
	windowStartTick int32
	ticks           int
	pausedTicks     int
	counts          [eventTypeCount]int
	projectiles     []float64
}

// NewCollector creates a collector with the given window length.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = time.Second
	}
	return &Collector{window: window}
}

// Record implements Recorder.
func (c *Collector) Record(ev Event) {
	if ev.Type < eventTypeCount && ev.Count > 0 {
		c.counts[ev.Type] += ev.Count
	}
}

// Advance accounts for one simulated tick of length dt.
func (c *Collector) Advance(dt time.Duration) {
	c.tick++
	c.ticks++
	c.simTime += dt
}

// RecordPaused accounts for a tick skipped while paused.
func (c *Collector) RecordPaused() {
	c.tick++
	c.pausedTicks++
}

// SampleProjectiles records the live projectile count for this tick.
func (c *Collector) SampleProjectiles(n int) {
	c.projectiles = append(c.projectiles, float64(n))
}

// Tick returns the number of ticks seen, paused or not.
func (c *Collector) Tick() int32 { return c.tick }

// SimTime returns the total simulated time.
func (c *Collector) SimTime() time.Duration { return c.simTime }

// Pending reports whether the current window has seen any tick.
func (c *Collector) Pending() bool {
	return c.ticks > 0 || c.pausedTicks > 0
}

// ShouldFlush reports whether the current window has covered its duration.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStart >= c.window
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(ship ShipSample) WindowStats {
	fired := c.counts[EventShotFired]
	dropped := c.counts[EventShotDropped]

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   c.tick,
		SimTimeSec:      c.simTime.Seconds(),
		Ticks:           c.ticks,
		PausedTicks:     c.pausedTicks,

		ShotsFired:   fired,
		ShotsDropped: dropped,
		FireErrors:   c.counts[EventFireError],

		Despawned:    c.counts[EventProjectileDespawned],
		StepSounds:   c.counts[EventStepSound],
		EffectStarts: c.counts[EventEffectStarted],
		EffectStops:  c.counts[EventEffectStopped],
		Orphans:      c.counts[EventAttachmentOrphaned],

		ShipX:        ship.X,
		ShipY:        ship.Y,
		ShipRotation: ship.Rotation,
		ShipSpeed:    ship.Speed,
		ShipAnim:     ship.Anim,
	}

	if span := (c.simTime - c.windowStart).Seconds(); span > 0 {
		stats.FireRate = float64(fired) / span
	}
	if fired+dropped > 0 {
		stats.DropRate = float64(dropped) / float64(fired+dropped)
	}
	if n := len(c.projectiles); n > 0 {
		stats.Projectiles = int(c.projectiles[n-1])
	}
	stats.ProjectilesMean, stats.ProjectilesP50, stats.ProjectilesP90 = ComputeSampleStats(c.projectiles)

	// Reset for next window
	c.windowStart = c.simTime
	c.windowStartTick = c.tick
	c.ticks = 0
	c.pausedTicks = 0
	c.counts = [eventTypeCount]int{}
	c.projectiles = c.projectiles[:0]

	return stats
}

// Window returns the configured window length.
func (c *Collector) Window() time.Duration {
	return c.window
}
