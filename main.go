package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nairan/audio"
	"github.com/pthm-cable/nairan/audio/speakerout"
	"github.com/pthm-cable/nairan/config"
	"github.com/pthm-cable/nairan/game"
	"github.com/pthm-cable/nairan/input"
	"github.com/pthm-cable/nairan/platform"
	"github.com/pthm-cable/nairan/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by an input script")
	scriptPath := flag.String("script", "", "Input script for headless runs (empty = built-in demo)")
	loop := flag.Bool("loop", false, "Restart the headless script when it ends")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (empty = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	mute := flag.Bool("mute", false, "Disable audio output")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	addr := cfg.Telemetry.MetricsAddr
	if *metricsAddr != "" {
		addr = *metricsAddr
	}
	var metrics *telemetry.Metrics
	if addr != "" {
		metrics = telemetry.NewMetrics()
		serveMetrics(addr, metrics)
	}

	bank := audio.NewBank(&cfg.Audio)
	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Steps:     bank.Steps(),
		Metrics:   metrics,
	}

	if *headless {
		if err := runHeadless(opts, *scriptPath, *loop, *maxTicks); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	if cfg.Audio.Enabled && !*mute {
		sink := speakerout.NewMixerSink(bank, cfg.Audio.Volume)
		if err := speakerout.Start(sink); err != nil {
			slog.Warn("audio disabled", "error", err)
		} else {
			opts.Sink = sink
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Nairan")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	var in platform.Input
	var cursor platform.Cursor
	renderer := platform.NewRenderer(g.World(), cfg)

	slog.Info("starting", "seed", rngSeed, "controls", cfg.Controls.Mode)
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			g.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}

		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		g.Step(dt, in.Poll(), cursor)
		renderer.Draw(g.Camera(), g.WrapSize(), g.Paused())

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

func runHeadless(opts game.Options, scriptPath string, loop bool, maxTicks int) error {
	script, err := loadScript(scriptPath)
	if err != nil {
		return err
	}

	g, err := game.NewGame(config.Cfg(), opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := g.RunHeadless(ctx, script, game.RunOptions{MaxTicks: maxTicks, Loop: loop})
	if errors.Is(err, context.Canceled) {
		slog.Info("interrupted", "steps", n)
		return nil
	}
	return err
}

func loadScript(path string) (*input.Script, error) {
	if path == "" {
		return input.DemoScript()
	}
	return input.LoadScript(path)
}

func serveMetrics(addr string, m *telemetry.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("metrics server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()
}
