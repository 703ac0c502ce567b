// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Solver    SolverConfig    `yaml:"solver"`
	Palette   PaletteConfig   `yaml:"palette"`
	Brush     BrushConfig     `yaml:"brush"`
	Emitters  []EmitterConfig `yaml:"emitters"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`
	Server    ServerConfig    `yaml:"server"`
	Terminal  TerminalConfig  `yaml:"terminal"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds simulation grid dimensions.
// A zero dimension is derived from the screen size divided by scale.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Scale  int `yaml:"scale"` // screen pixels per grid cell
}

// SolverConfig holds the fluid coefficients.
type SolverConfig struct {
	Speed      float64 `yaml:"speed"`
	Viscosity  float64 `yaml:"viscosity"` // [0,1]
	Iterations int     `yaml:"iterations"`
	HeatForce  float64 `yaml:"heat_force"`
}

// PaletteConfig selects the ink color ramp.
// Path wins over Name, Name wins over Colors.
type PaletteConfig struct {
	Path   string   `yaml:"path"`   // image whose first row is the ramp
	Name   string   `yaml:"name"`   // built-in ramp
	Colors []string `yaml:"colors"` // hex colors, "#rrggbb" or "#rrggbbaa"
}

// BrushConfig holds interactive painting parameters.
type BrushConfig struct {
	InkRadius      float64 `yaml:"ink_radius"`
	VelocityRadius float64 `yaml:"velocity_radius"`
	VelocityGain   float64 `yaml:"velocity_gain"` // mouse delta (cells) to velocity
}

// Emitter modes.
const (
	EmitterInk   = "ink"
	EmitterErase = "erase"
	EmitterJet   = "jet"
)

// EmitterConfig describes one scripted stirrer.
type EmitterConfig struct {
	X       float64 `yaml:"x"` // grid cells
	Y       float64 `yaml:"y"`
	Radius  float64 `yaml:"radius"`
	Mode    string  `yaml:"mode"` // ink, erase or jet
	VX      float64 `yaml:"vx"`   // jet velocity
	VY      float64 `yaml:"vy"`
	Wander  float64 `yaml:"wander"`       // noise displacement amplitude in cells
	Speed   float64 `yaml:"wander_speed"` // noise time scale per tick
	Seed    int64   `yaml:"seed"`
	Enabled *bool   `yaml:"enabled"` // nil means enabled
}

// IsEnabled reports whether the emitter should be spawned.
func (e EmitterConfig) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // ticks of perf history
	BookmarkHistorySize int `yaml:"bookmark_history_size"` // windows of bookmark history
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	SurgeMultiplier float64 `yaml:"surge_multiplier"` // max speed vs rolling mean
	CalmSpeed       float64 `yaml:"calm_speed"`       // mean speed considered settled
	SaturationMean  float64 `yaml:"saturation_mean"`  // mean ink considered saturated
}

// ServerConfig holds the websocket viewer settings.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	FrameEvery int    `yaml:"frame_every"` // ticks between broadcast frames
}

// TerminalConfig holds the terminal front end settings.
type TerminalConfig struct {
	FPS int `yaml:"fps"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GridW, GridH int
	ScreenW32    float32
	ScreenH32    float32
	Scale32      float32
}

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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
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

// Validate checks values the solver cannot run with.
func (c *Config) Validate() error {
	if c.Grid.Scale <= 0 {
		return fmt.Errorf("%w: grid.scale must be positive, got %d", ErrInvalid, c.Grid.Scale)
	}
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return fmt.Errorf("%w: grid size must not be negative, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	}
	if (c.Grid.Width == 0 && c.Screen.Width <= 0) || (c.Grid.Height == 0 && c.Screen.Height <= 0) {
		return fmt.Errorf("%w: grid size cannot be derived from screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Solver.Viscosity < 0 || c.Solver.Viscosity > 1 {
		return fmt.Errorf("%w: solver.viscosity must be in [0,1], got %v", ErrInvalid, c.Solver.Viscosity)
	}
	if c.Solver.Iterations < 0 {
		return fmt.Errorf("%w: solver.iterations must not be negative, got %d", ErrInvalid, c.Solver.Iterations)
	}
	if n := len(c.Palette.Colors); n == 1 {
		return fmt.Errorf("%w: palette.colors needs at least two entries", ErrInvalid)
	}
	for i, e := range c.Emitters {
		switch e.Mode {
		case EmitterInk, EmitterErase, EmitterJet:
		default:
			return fmt.Errorf("%w: emitters[%d].mode %q is not ink, erase or jet", ErrInvalid, i, e.Mode)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Scale32 = float32(c.Grid.Scale)

	// Grid dimensions default to the screen divided by scale, rounded up
	c.Derived.GridW = c.Grid.Width
	if c.Derived.GridW == 0 {
		c.Derived.GridW = int(math.Ceil(float64(c.Screen.Width) / float64(c.Grid.Scale)))
	}
	c.Derived.GridH = c.Grid.Height
	if c.Derived.GridH == 0 {
		c.Derived.GridH = int(math.Ceil(float64(c.Screen.Height) / float64(c.Grid.Scale)))
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
