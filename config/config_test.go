package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	if cfg.Solver.Iterations != 40 {
		t.Errorf("solver.iterations = %d, want 40", cfg.Solver.Iterations)
	}
	if cfg.Solver.HeatForce != 0.2 {
		t.Errorf("solver.heat_force = %v, want 0.2", cfg.Solver.HeatForce)
	}
	// 480/3 and 640/3 rounded up
	if cfg.Derived.GridW != 160 || cfg.Derived.GridH != 214 {
		t.Errorf("derived grid = %dx%d, want 160x214", cfg.Derived.GridW, cfg.Derived.GridH)
	}
	if len(cfg.Palette.Colors) != 2 {
		t.Errorf("default palette has %d colors, want 2", len(cfg.Palette.Colors))
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte(`
grid:
  width: 64
solver:
  viscosity: 0.5
emitters:
  - x: 10
    y: 20
    radius: 4
    mode: jet
    vy: -1
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.GridW != 64 {
		t.Errorf("grid width = %d, want 64", cfg.Derived.GridW)
	}
	if cfg.Derived.GridH != 214 {
		t.Errorf("grid height = %d, want derived 214", cfg.Derived.GridH)
	}
	if cfg.Solver.Viscosity != 0.5 || cfg.Solver.Iterations != 40 {
		t.Errorf("solver = %+v, want viscosity override with default iterations", cfg.Solver)
	}
	if len(cfg.Emitters) != 1 || cfg.Emitters[0].Mode != EmitterJet || !cfg.Emitters[0].IsEnabled() {
		t.Errorf("emitters = %+v", cfg.Emitters)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero scale", func(c *Config) { c.Grid.Scale = 0 }},
		{"negative width", func(c *Config) { c.Grid.Width = -4 }},
		{"underivable height", func(c *Config) { c.Screen.Height = 0 }},
		{"viscosity above one", func(c *Config) { c.Solver.Viscosity = 1.5 }},
		{"viscosity below zero", func(c *Config) { c.Solver.Viscosity = -0.1 }},
		{"negative iterations", func(c *Config) { c.Solver.Iterations = -1 }},
		{"single color palette", func(c *Config) { c.Palette.Colors = []string{"#fff"} }},
		{"unknown emitter", func(c *Config) { c.Emitters = []EmitterConfig{{Mode: "vortex"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Solver.Speed = 2

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if back.Solver.Speed != 2 {
		t.Errorf("round-tripped speed = %v, want 2", back.Solver.Speed)
	}
}
