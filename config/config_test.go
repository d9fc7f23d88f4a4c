package config

import (
	"bytes"
	"errors"
	"go/format"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Derived.WeaponCooldown != 160*time.Millisecond {
		t.Errorf("WeaponCooldown = %v, want 160ms", cfg.Derived.WeaponCooldown)
	}
	if cfg.Derived.ProjectileLife != 2*time.Second {
		t.Errorf("ProjectileLife = %v, want 2s", cfg.Derived.ProjectileLife)
	}
	if math.Abs(cfg.Derived.SteeringRateRad-2*math.Pi) > 1e-12 {
		t.Errorf("SteeringRateRad = %v, want 2π", cfg.Derived.SteeringRateRad)
	}
	if !cfg.Derived.StepFrameLookup[2] || !cfg.Derived.StepFrameLookup[5] || cfg.Derived.StepFrameLookup[3] {
		t.Errorf("StepFrameLookup = %v", cfg.Derived.StepFrameLookup)
	}
	if cfg.Derived.EngineInterval != time.Second/12 {
		t.Errorf("EngineInterval = %v", cfg.Derived.EngineInterval)
	}
	if cfg.Derived.DirectionalMode {
		t.Error("default controls should be ship mode")
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("weapon:\n  cooldown: 0.5\ncontrols:\n  mode: directional\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.WeaponCooldown != 500*time.Millisecond {
		t.Errorf("WeaponCooldown = %v, want 500ms", cfg.Derived.WeaponCooldown)
	}
	if cfg.Projectile.Speed != 500 {
		t.Errorf("unrelated default lost: projectile.speed = %v", cfg.Projectile.Speed)
	}
	if !cfg.Derived.DirectionalMode {
		t.Error("expected directional mode")
	}
}

func TestValidateRejects(t *testing.T) {
	testCases := []struct {
		name string
		edit func(c *Config)
	}{
		{"zero cooldown", func(c *Config) { c.Weapon.Cooldown = 0 }},
		{"negative lifetime", func(c *Config) { c.Projectile.Lifetime = -1 }},
		{"nan speed", func(c *Config) { c.Ship.Speed = math.NaN() }},
		{"zero screen", func(c *Config) { c.Screen.Width = 0 }},
		{"step frame out of range", func(c *Config) { c.Player.StepFrames = []int{6} }},
		{"engine frames reversed", func(c *Config) { c.Engine.FirstFrame, c.Engine.LastFrame = 5, 2 }},
		{"unknown controls", func(c *Config) { c.Controls.Mode = "tank" }},
		{"negative guard", func(c *Config) { c.Steering.MinDistance = -1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Defaults()
			if err != nil {
				t.Fatal(err)
			}
			tc.edit(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if back.Weapon != cfg.Weapon || back.Engine != cfg.Engine {
		t.Errorf("round trip mismatch: %+v vs %+v", back.Weapon, cfg.Weapon)
	}
}

func TestCfgAfterInit(t *testing.T) {
	MustInit("")
	if Cfg().Screen.Width != 1280 {
		t.Errorf("Cfg().Screen.Width = %d", Cfg().Screen.Width)
	}
}

func TestSourceIsFormatted(t *testing.T) {
	src, err := os.ReadFile("config.go")
	if err != nil {
		t.Fatal(err)
	}
	formatted, err := format.Source(src)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !bytes.Equal(src, formatted) {
		t.Error("config.go is not gofmt-formatted")
	}
}
