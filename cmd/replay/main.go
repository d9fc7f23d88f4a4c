// Command replay runs scripted headless sessions and writes per-run telemetry
// plus a summary.csv, for comparing behaviour across config changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/nairan/config"
	"github.com/pthm-cable/nairan/game"
	"github.com/pthm-cable/nairan/input"
	"github.com/pthm-cable/nairan/telemetry"
)

// RunSummary totals one replay.
type RunSummary struct {
	Seed         uint64  `csv:"seed"`
	Steps        int     `csv:"steps"`
	SimTimeSec   float64 `csv:"sim_time"`
	ShotsFired   int     `csv:"shots_fired"`
	ShotsDropped int     `csv:"shots_dropped"`
	FireErrors   int     `csv:"fire_errors"`
	Despawned    int     `csv:"projectiles_despawned"`
	StepSounds   int     `csv:"step_sounds"`
	EffectStarts int     `csv:"effect_starts"`
	FinalX       float64 `csv:"final_x"`
	FinalY       float64 `csv:"final_y"`
	WallTime     string  `csv:"wall_time"`
}

func (s *RunSummary) add(w telemetry.WindowStats) {
	s.ShotsFired += w.ShotsFired
	s.ShotsDropped += w.ShotsDropped
	s.FireErrors += w.FireErrors
	s.Despawned += w.Despawned
	s.StepSounds += w.StepSounds
	s.EffectStarts += w.EffectStarts
	s.SimTimeSec = w.SimTimeSec
	s.FinalX, s.FinalY = w.ShipX, w.ShipY
}

// formatDuration formats a duration as MM:SS.mmm.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%dm%02d.%03ds", m, s, d/time.Millisecond)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	scriptPath := flag.String("script", "", "Input script (empty = built-in demo)")
	outputDir := flag.String("output", "", "Output directory for results")
	seeds := flag.Int("seeds", 1, "Number of seeded runs")
	dt := flag.Duration("dt", 0, "Fixed step (0 = config physics.dt)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(2)
	}
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var script *input.Script
	var err error
	if *scriptPath == "" {
		script, err = input.DemoScript()
	} else {
		script, err = input.LoadScript(*scriptPath)
	}
	if err != nil {
		slog.Error("failed to load script", "error", err)
		os.Exit(1)
	}

	var summaries []*RunSummary
	for i := 0; i < *seeds; i++ {
		seed := uint64(i*1000 + 42)
		s, err := replay(config.Cfg(), script, seed, *dt, filepath.Join(*outputDir, fmt.Sprintf("seed-%d", seed)))
		if err != nil {
			slog.Error("replay failed", "seed", seed, "error", err)
			os.Exit(1)
		}
		slog.Info("replay done", "seed", seed, "steps", s.Steps, "shots_fired", s.ShotsFired, "wall_time", s.WallTime)
		summaries = append(summaries, s)
	}

	if err := writeSummary(filepath.Join(*outputDir, "summary.csv"), summaries); err != nil {
		slog.Error("failed to write summary", "error", err)
		os.Exit(1)
	}
}

func replay(cfg *config.Config, script *input.Script, seed uint64, dt time.Duration, dir string) (*RunSummary, error) {
	summary := &RunSummary{Seed: seed}
	g, err := game.NewGame(cfg, game.Options{
		Seed:          seed,
		OutputDir:     dir,
		StatsCallback: summary.add,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	n, err := g.RunHeadless(context.Background(), script, game.RunOptions{DT: dt})
	g.Unload()
	if err != nil {
		return nil, err
	}

	summary.Steps = n
	summary.WallTime = formatDuration(time.Since(start))
	return summary, nil
}

func writeSummary(path string, rows []*RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
