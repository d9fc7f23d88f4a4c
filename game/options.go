package game

import (
	"github.com/pthm-cable/nairan/audio"
	"github.com/pthm-cable/nairan/input"
	"github.com/pthm-cable/nairan/telemetry"
)

// Options holds optional settings for NewGame.
type Options struct {
	Seed      uint64
	LogStats  bool   // log window and perf stats via slog
	OutputDir string // empty disables CSV output

	// Bindings defaults to input.DefaultBindings when zero.
	Bindings *input.Bindings

	// Sink receives step sounds; nil discards them.
	Sink audio.Sink
	// Steps is the clip pool for footsteps. Empty disables step sounds.
	Steps []audio.Clip

	// Metrics, when set, receives events and timings.
	Metrics *telemetry.Metrics

	// StatsCallback is called with every flushed window.
	StatsCallback func(telemetry.WindowStats)
}
