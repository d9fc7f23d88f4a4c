// Package game owns the ECS world and runs the simulation one step at a time.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/camera"
	"github.com/pthm-cable/nairan/components"
	"github.com/pthm-cable/nairan/config"
	"github.com/pthm-cable/nairan/input"
	"github.com/pthm-cable/nairan/systems"
	"github.com/pthm-cable/nairan/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg      *config.Config
	world    *ecs.World
	rng      *rand.Rand
	camera   *camera.Camera
	bindings input.Bindings
	queue    components.FireQueue

	// Systems
	timers   *systems.TimerSystem
	intent   *systems.IntentSystem
	fire     *systems.FireControlSystem
	movement *systems.MovementSystem
	steering *systems.SteeringSystem
	wrap     *systems.WrapSystem
	attach   *systems.AttachmentSystem
	anim     *systems.PlayerAnimationSystem
	effects  *systems.EffectSystem
	despawn  *systems.DespawnSystem
	registry *systems.SystemRegistry

	// Component mappers for lookups
	transforms *ecs.Map[components.Transform]
	velocities *ecs.Map[components.Velocity]
	sprites    *ecs.Map[components.Sprite]
	animations *ecs.Map[components.PlayerAnimation]
	projFilter *ecs.Filter1[components.Projectile]

	ship    ecs.Entity
	exhaust ecs.Entity

	// State
	paused bool

	// Telemetry
	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	metrics       *telemetry.Metrics
	events        telemetry.Recorders
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGame creates a game with the player ship and its engine exhaust spawned.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	bindings := input.DefaultBindings
	if opts.Bindings != nil {
		bindings = *opts.Bindings
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	collector := telemetry.NewCollector(cfg.Derived.StatsWindow)

	g := &Game{
		cfg:      cfg,
		world:    world,
		rng:      rng,
		camera:   camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height)),
		bindings: bindings,

		timers:   systems.NewTimerSystem(world),
		intent:   systems.NewIntentSystem(world, bindings, cfg.Derived.DirectionalMode),
		fire:     systems.NewFireControlSystem(world, systems.FireParamsFromConfig(cfg), cfg.Derived.ErrorLogEvery),
		movement: systems.NewMovementSystem(world),
		steering: systems.NewSteeringSystem(world),
		wrap:     systems.NewWrapSystem(world, cfg.Wrap.Margin),
		attach:   systems.NewAttachmentSystem(world),
		anim:     systems.NewPlayerAnimationSystem(world, opts.Sink, opts.Steps, cfg.Derived.StepFrameLookup, rng),
		effects:  systems.NewEffectSystem(world),
		despawn:  systems.NewDespawnSystem(world),
		registry: systems.NewSystemRegistry(),

		transforms: ecs.NewMap[components.Transform](world),
		velocities: ecs.NewMap[components.Velocity](world),
		sprites:    ecs.NewMap[components.Sprite](world),
		animations: ecs.NewMap[components.PlayerAnimation](world),
		projFilter: ecs.NewFilter1[components.Projectile](world),

		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     collector,
		output:        output,
		metrics:       opts.Metrics,
		events:        telemetry.Recorders{collector, opts.Metrics},
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	g.camera.SetZoom(cfg.Screen.Zoom)

	g.ship = g.spawnShip(r2.Vec{})
	g.exhaust = g.spawnEngineExhaust(g.ship)

	slog.Info("game created",
		"controls", cfg.Controls.Mode,
		"systems", len(g.registry.All()),
		"output_dir", output.Dir(),
	)
	return g, nil
}

// Step advances the simulation by dt. in is this tick's input and cursor
// may be nil when no pointer is available.
func (g *Game) Step(dt time.Duration, in input.State, cursor camera.CursorSource) {
	if in == nil {
		in = input.None
	}
	g.perf.StartTick()

	if g.bindings.PauseToggled(in) {
		g.SetPaused(!g.paused)
		if !g.paused {
			g.syncEngine(in)
		}
	}
	if g.paused {
		g.collector.RecordPaused()
		g.perf.EndTick()
		return
	}
	g.collector.Advance(dt)

	for _, phase := range Phases() {
		g.runPhase(phase, dt, in, cursor)
	}

	g.metrics.ObserveTick(g.perf.EndTick())
}

func (g *Game) runPhase(phase Phase, dt time.Duration, in input.State, cursor camera.CursorSource) {
	switch phase {
	case PhaseTickTimers:
		g.begin(systems.IDTimers)
		g.timers.Update(dt)

	case PhaseRecordInput:
		g.begin(systems.IDIntent)
		g.intent.RecordMovement(in)
		g.intent.RecordFire(in, &g.queue)

		g.begin(systems.IDFireControl)
		g.recordFire(g.fire.Update(&g.queue))

		g.begin(systems.IDEffectTriggers)
		if g.bindings.EngineStarted(in) {
			g.record(telemetry.EventEffectStarted, g.effects.Start(components.EffectEngineExhaust))
		}
		if g.bindings.EngineStopped(in) {
			g.record(telemetry.EventEffectStopped, g.effects.Stop(components.EffectEngineExhaust))
		}

	case PhaseUpdate:
		g.begin(systems.IDMovement)
		g.movement.ApplyIntent()

		g.begin(systems.IDSteering)
		if g.bindings.Steering(in) {
			target, err := g.resolveCursor(cursor)
			g.steering.Update(dt, true, target, err == nil)
		}

		g.begin(systems.IDIntegrate)
		g.movement.Integrate(dt)

		g.begin(systems.IDWrap)
		g.wrap.Update(g.Viewport())

		g.begin(systems.IDAttach)
		g.record(telemetry.EventAttachmentOrphaned, g.attach.Update(g.world))

		g.begin(systems.IDPlayerAnimation)
		g.record(telemetry.EventStepSound, g.anim.Update())

		g.begin(systems.IDEffects)
		g.effects.Advance()

	case PhaseDespawn:
		g.begin(systems.IDDespawn)
		g.record(telemetry.EventProjectileDespawned, g.despawn.Update(g.world))

	case PhaseTelemetry:
		g.begin(systems.IDTelemetry)
		n := g.ProjectileCount()
		g.collector.SampleProjectiles(n)
		g.metrics.SetProjectiles(n)
		g.flushTelemetry()
	}
}

// begin starts timing the system id; the previous system's timing ends here.
func (g *Game) begin(id string) {
	g.perf.StartPhase(id)
}

// resolveCursor maps the cursor into the world. A missing cursor source is
// treated like a cursor outside the window.
func (g *Game) resolveCursor(src camera.CursorSource) (r2.Vec, error) {
	if src == nil {
		return r2.Vec{}, camera.ErrNoCursorInWindow
	}
	p, err := g.camera.CursorWorld(src)
	if err != nil {
		slog.Debug("cursor unresolved", "error", err)
	}
	return p, err
}

// syncEngine matches the exhaust to the thrust key after a pause, since
// press and release edges are not processed while paused.
func (g *Game) syncEngine(in input.State) {
	if in.Pressed(g.bindings.Thrust) {
		g.record(telemetry.EventEffectStarted, g.effects.Start(components.EffectEngineExhaust))
		return
	}
	g.record(telemetry.EventEffectStopped, g.effects.Stop(components.EffectEngineExhaust))
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	g.metrics.SetPaused(paused)
	slog.Info("pause", "paused", paused, "tick", g.collector.Tick())
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Resize updates the viewport used for the camera and screen wrap.
func (g *Game) Resize(width, height int) {
	g.camera.Resize(float64(width), float64(height))
}

// Viewport returns the viewport size in screen pixels.
func (g *Game) Viewport() r2.Vec {
	return r2.Vec{X: g.camera.ViewportW, Y: g.camera.ViewportH}
}

// WrapSize returns the screen wrap region for the current viewport.
func (g *Game) WrapSize() r2.Vec {
	return g.wrap.Size(g.Viewport())
}

// Camera returns the game camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// World returns the ECS world.
func (g *Game) World() *ecs.World { return g.world }

// Ship returns the player ship entity.
func (g *Game) Ship() ecs.Entity { return g.ship }

// Exhaust returns the engine exhaust effect entity.
func (g *Game) Exhaust() ecs.Entity { return g.exhaust }

// Tick returns the number of steps taken, paused or not.
func (g *Game) Tick() int32 { return g.collector.Tick() }

// SimTime returns the simulated time, excluding paused steps.
func (g *Game) SimTime() time.Duration { return g.collector.SimTime() }

// Config returns the game configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// ProjectileCount returns the number of live projectiles.
func (g *Game) ProjectileCount() int {
	n := 0
	query := g.projFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Unload flushes any partial stats window and closes output files.
// Calling it again is a no-op.
func (g *Game) Unload() {
	if g.collector.Pending() {
		g.writeWindow(g.collector.Flush(g.shipSample()))
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.output = nil
}
