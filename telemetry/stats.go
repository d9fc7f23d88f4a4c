package telemetry

import (
	"log/slog"
	"sort"
)

// ShipSample is the player ship's state at the end of a window.
type ShipSample struct {
	X, Y     float64
	Rotation float64
	Speed    float64
	Anim     string
}

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`
	PausedTicks     int     `csv:"paused_ticks"`

	// Fire control
	ShotsFired   int     `csv:"shots_fired"`
	ShotsDropped int     `csv:"shots_dropped"`
	FireErrors   int     `csv:"fire_errors"`
	FireRate     float64 `csv:"fire_rate"` // shots per simulated second
	DropRate     float64 `csv:"drop_rate"` // dropped / requested

	// Projectiles
	Despawned       int     `csv:"projectiles_despawned"`
	Projectiles     int     `csv:"projectiles"` // alive at window end
	ProjectilesMean float64 `csv:"projectiles_mean"`
	ProjectilesP50  float64 `csv:"projectiles_p50"`
	ProjectilesP90  float64 `csv:"projectiles_p90"`

	// Animation and effects
	StepSounds   int `csv:"step_sounds"`
	EffectStarts int `csv:"effect_starts"`
	EffectStops  int `csv:"effect_stops"`
	Orphans      int `csv:"attachments_orphaned"`

	// Ship at window end
	ShipX        float64 `csv:"ship_x"`
	ShipY        float64 `csv:"ship_y"`
	ShipRotation float64 `csv:"ship_rotation"`
	ShipSpeed    float64 `csv:"ship_speed"`
	ShipAnim     string  `csv:"ship_anim"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSampleStats returns the mean, median and 90th percentile of values.
// values is not modified.
func ComputeSampleStats(values []float64) (mean, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("paused_ticks", s.PausedTicks),
		slog.Int("shots_fired", s.ShotsFired),
		slog.Int("shots_dropped", s.ShotsDropped),
		slog.Int("fire_errors", s.FireErrors),
		slog.Float64("fire_rate", s.FireRate),
		slog.Int("projectiles", s.Projectiles),
		slog.Float64("projectiles_p90", s.ProjectilesP90),
		slog.Int("projectiles_despawned", s.Despawned),
		slog.Int("step_sounds", s.StepSounds),
		slog.Int("effect_starts", s.EffectStarts),
		slog.Int("effect_stops", s.EffectStops),
		slog.Float64("ship_x", s.ShipX),
		slog.Float64("ship_y", s.ShipY),
		slog.Float64("ship_speed", s.ShipSpeed),
		slog.String("ship_anim", s.ShipAnim),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
