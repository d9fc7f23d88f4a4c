package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pthm-cable/nairan/input"
)

// RunOptions bounds a headless run.
type RunOptions struct {
	DT       time.Duration // fixed step; defaults to the configured physics dt
	MaxTicks int           // 0 = until the script ends
	Loop     bool          // restart the script when it ends
}

// RunHeadless drives the game from a scripted input timeline at a fixed step
// until the script ends, MaxTicks is reached or ctx is cancelled.
// It returns the number of steps taken.
func (g *Game) RunHeadless(ctx context.Context, script *input.Script, opts RunOptions) (int, error) {
	dt := opts.DT
	if dt <= 0 {
		dt = g.cfg.Derived.DT
	}

	if opts.Loop && script.Duration() <= 0 {
		return 0, errors.New("cannot loop an empty script")
	}

	replay := input.NewReplay(script)
	slog.Info("starting headless run",
		"dt", dt,
		"script_duration", script.Duration(),
		"max_ticks", opts.MaxTicks,
		"loop", opts.Loop,
	)

	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		if opts.MaxTicks > 0 && steps >= opts.MaxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return steps, nil
		}
		if replay.Done() {
			if !opts.Loop {
				slog.Info("script finished", "tick", g.Tick(), "sim_time", g.SimTime())
				return steps, nil
			}
			replay = input.NewReplay(script)
		}

		in := replay.Next(dt)
		g.Step(dt, in, replay)
		steps++
	}
}
