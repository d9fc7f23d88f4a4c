// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Controls   ControlsConfig   `yaml:"controls"`
	Ship       ShipConfig       `yaml:"ship"`
	Steering   SteeringConfig   `yaml:"steering"`
	Weapon     WeaponConfig     `yaml:"weapon"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Wrap       WrapConfig       `yaml:"wrap"`
	Player     PlayerConfig     `yaml:"player"`
	Engine     EngineConfig     `yaml:"engine"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Zoom      float64 `yaml:"zoom"`
}

// PhysicsConfig holds the fixed step used by headless runs.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// ControlsConfig selects how keyboard input becomes movement intent.
type ControlsConfig struct {
	Mode string `yaml:"mode"` // "ship" (thrust along facing) or "directional" (WASD)
}

// ShipConfig holds player ship parameters.
type ShipConfig struct {
	Speed    float64 `yaml:"speed"`     // max speed while thrusting
	MaxSpeed float64 `yaml:"max_speed"` // max speed in directional mode
	Scale    float64 `yaml:"scale"`
	Z        float64 `yaml:"z"`
}

// SteeringConfig holds rotate-toward-cursor parameters.
type SteeringConfig struct {
	RateDeg     float64 `yaml:"rate_deg"`     // degrees per second
	MinDistance float64 `yaml:"min_distance"` // cursor guard radius
}

// WeaponConfig holds fire-control parameters.
type WeaponConfig struct {
	Cooldown      float64 `yaml:"cooldown"`        // seconds between shots
	SpawnOffset   float64 `yaml:"spawn_offset"`    // distance ahead of the firer
	ErrorLogEvery float64 `yaml:"error_log_every"` // seconds between repeated fire-control error logs
}

// ProjectileConfig holds projectile parameters.
type ProjectileConfig struct {
	Speed    float64 `yaml:"speed"`
	Lifetime float64 `yaml:"lifetime"` // seconds
}

// WrapConfig holds screen wrap parameters.
type WrapConfig struct {
	Margin float64 `yaml:"margin"` // added to viewport size on both axes
}

// PlayerConfig holds the walking animation layout.
type PlayerConfig struct {
	IdleFrames    int     `yaml:"idle_frames"`
	IdleInterval  float64 `yaml:"idle_interval"` // seconds per frame
	WalkFrames    int     `yaml:"walk_frames"`
	WalkInterval  float64 `yaml:"walk_interval"`
	StepFrames    []int   `yaml:"step_frames"` // walk frames that request a step sound
	AtlasColumns  int     `yaml:"atlas_columns"`
	AtlasRows     int     `yaml:"atlas_rows"`
	AtlasCellSize int     `yaml:"atlas_cell_size"`
}

// EngineConfig holds the engine exhaust effect.
type EngineConfig struct {
	FirstFrame int     `yaml:"first_frame"`
	LastFrame  int     `yaml:"last_frame"`
	FPS        float64 `yaml:"fps"`
	OffsetY    float64 `yaml:"offset_y"` // along the ship's forward axis
	Z          float64 `yaml:"z"`
}

// AudioConfig holds step sound parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	StepClips  int     `yaml:"step_clips"`
	StepLength float64 `yaml:"step_length"` // seconds
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	MetricsAddr         string  `yaml:"metrics_addr"` // empty disables /metrics
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT              time.Duration // Physics.DT
	WeaponCooldown  time.Duration
	ProjectileLife  time.Duration
	IdleInterval    time.Duration
	WalkInterval    time.Duration
	EngineInterval  time.Duration // 1 / Engine.FPS
	StatsWindow     time.Duration
	ErrorLogEvery   time.Duration
	SteeringRateRad float64 // radians per second
	StepFrameLookup map[int]bool
	DirectionalMode bool
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded defaults with derived values computed.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"physics.dt", c.Physics.DT},
		{"screen.zoom", c.Screen.Zoom},
		{"ship.speed", c.Ship.Speed},
		{"ship.max_speed", c.Ship.MaxSpeed},
		{"steering.rate_deg", c.Steering.RateDeg},
		{"weapon.cooldown", c.Weapon.Cooldown},
		{"projectile.speed", c.Projectile.Speed},
		{"projectile.lifetime", c.Projectile.Lifetime},
		{"player.idle_interval", c.Player.IdleInterval},
		{"player.walk_interval", c.Player.WalkInterval},
		{"engine.fps", c.Engine.FPS},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Steering.MinDistance < 0 || c.Wrap.Margin < 0 || c.Weapon.SpawnOffset < 0 {
		return fmt.Errorf("%w: steering.min_distance, wrap.margin and weapon.spawn_offset must not be negative", ErrInvalid)
	}
	if c.Player.IdleFrames <= 0 || c.Player.WalkFrames <= 0 {
		return fmt.Errorf("%w: player frame counts must be positive", ErrInvalid)
	}
	for _, f := range c.Player.StepFrames {
		if f < 0 || f >= c.Player.WalkFrames {
			return fmt.Errorf("%w: step frame %d outside walk frames [0,%d)", ErrInvalid, f, c.Player.WalkFrames)
		}
	}
	if c.Engine.FirstFrame < 0 || c.Engine.LastFrame < c.Engine.FirstFrame {
		return fmt.Errorf("%w: engine frames [%d,%d]", ErrInvalid, c.Engine.FirstFrame, c.Engine.LastFrame)
	}
	switch c.Controls.Mode {
	case "ship", "directional":
	default:
		return fmt.Errorf("%w: controls.mode %q", ErrInvalid, c.Controls.Mode)
	}
	if c.Audio.Enabled && (c.Audio.SampleRate <= 0 || c.Audio.StepClips <= 0 || c.Audio.StepLength <= 0) {
		return fmt.Errorf("%w: audio sample_rate, step_clips and step_length must be positive", ErrInvalid)
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = seconds(c.Physics.DT)
	c.Derived.WeaponCooldown = seconds(c.Weapon.Cooldown)
	c.Derived.ProjectileLife = seconds(c.Projectile.Lifetime)
	c.Derived.IdleInterval = seconds(c.Player.IdleInterval)
	c.Derived.WalkInterval = seconds(c.Player.WalkInterval)
	if c.Engine.FPS > 0 {
		c.Derived.EngineInterval = seconds(1 / c.Engine.FPS)
	}
	c.Derived.StatsWindow = seconds(c.Telemetry.StatsWindow)
	c.Derived.ErrorLogEvery = seconds(c.Weapon.ErrorLogEvery)
	c.Derived.SteeringRateRad = c.Steering.RateDeg * math.Pi / 180
	c.Derived.DirectionalMode = c.Controls.Mode == "directional"

	c.Derived.StepFrameLookup = make(map[int]bool, len(c.Player.StepFrames))
	for _, f := range c.Player.StepFrames {
		c.Derived.StepFrameLookup[f] = true
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
